package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"finanzas/internal/amqp"
	"finanzas/internal/cli"
	"finanzas/internal/console"
	"finanzas/internal/interpret"
	"finanzas/internal/ledger/xlsx"
	"finanzas/internal/log"
	"finanzas/internal/services"
	"finanzas/internal/speech"
	gspeech "finanzas/internal/speech/google"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	cli.LoadEnvFile()

	slogger := cli.SetupLogger()
	logger := log.New(log.DefaultConfig())

	cfg := cli.LoadAndValidateConfig(slogger)

	journal := cli.InitSQLite(slogger, cfg.SQLiteDBPath)
	defer journal.Close()

	ledgerStore := xlsx.New(cfg.LedgerDir)

	// AMQP is optional; without it transactions are still journaled and the
	// periodic worker resync picks them up later.
	var publisher services.Publisher
	if cfg.MirrorEnabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP mirror queue enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recognizer, err := gspeech.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize speech client", "error", err)
		os.Exit(1)
	}

	recorder := &speech.ArecordRecorder{
		Device:  cfg.AudioDevice,
		Seconds: cfg.RecordSeconds,
	}

	svc := services.NewRecorderService(journal, ledgerStore, publisher)
	interp := interpret.New(interpret.Config{})

	c := console.New(os.Stdin, os.Stdout, recorder, recognizer, interp, svc, cfg.SpeechLanguage, logger)

	logger.Info("Starting finanzas console",
		"ledger_dir", cfg.LedgerDir,
		"language", cfg.SpeechLanguage)

	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Console stopped with error", "error", err)
		os.Exit(1)
	}
}
