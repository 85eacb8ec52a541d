// Package console runs the interactive capture-and-record loop. One cycle
// per user action: capture, transcribe, interpret, confirm, persist. Every
// failure is reported and the loop continues; only the user ends it.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"finanzas/internal/core"
	"finanzas/internal/interpret"
	"finanzas/internal/log"
	"finanzas/internal/speech"
)

// TransactionCreator persists a confirmed transaction.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (string, error)
}

type Console struct {
	in         *bufio.Scanner
	out        io.Writer
	recorder   speech.Recorder
	recognizer speech.Recognizer
	interp     *interpret.Interpreter
	creator    TransactionCreator
	lang       string
	logger     *log.Logger
}

func New(in io.Reader, out io.Writer, recorder speech.Recorder, recognizer speech.Recognizer,
	interp *interpret.Interpreter, creator TransactionCreator, lang string, logger *log.Logger) *Console {
	return &Console{
		in:         bufio.NewScanner(in),
		out:        out,
		recorder:   recorder,
		recognizer: recognizer,
		interp:     interp,
		creator:    creator,
		lang:       lang,
		logger:     logger.WithComponent(log.ComponentConsole),
	}
}

// Run drives the command loop until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "Escribe 'e' para registrar una operación o 'salir' para terminar: ")
		line, ok := c.readLine()
		if !ok {
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "e":
			c.cycle(ctx)
		case "salir":
			fmt.Fprintln(c.out, "Programa finalizado. ¡Hasta pronto!")
			return nil
		default:
			fmt.Fprintln(c.out, "Comando no reconocido. Escribe 'e' o 'salir'.")
		}
	}
}

// cycle runs one capture-to-persist pass. Errors never escape; they are
// reported to the user and the command loop resumes.
func (c *Console) cycle(ctx context.Context) {
	fmt.Fprintln(c.out, "Escuchando... di tu comando.")

	audio, err := c.recorder.Record(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "Audio capture failed", log.FieldError, err)
		fmt.Fprintln(c.out, "No se pudo capturar el audio.")
		return
	}

	text, err := c.recognizer.Recognize(ctx, audio, c.lang)
	switch {
	case errors.Is(err, speech.ErrUnintelligible):
		fmt.Fprintln(c.out, "No se pudo entender el audio.")
		return
	case errors.Is(err, speech.ErrService):
		c.logger.WarnContext(ctx, "Recognition service failed", log.FieldError, err)
		fmt.Fprintln(c.out, "Error de conexión con el servicio de voz.")
		return
	case err != nil:
		c.logger.ErrorContext(ctx, "Recognition failed", log.FieldError, err)
		fmt.Fprintln(c.out, "No se pudo transcribir el audio.")
		return
	}
	fmt.Fprintf(c.out, "Entendí: %s\n", text)

	tx, err := c.interp.Interpret(text)
	switch {
	case errors.Is(err, interpret.ErrNoMatch):
		fmt.Fprintln(c.out, "No se pudo interpretar el comando. Intenta decir algo como 'Vendí por el valor de 10000'.")
		return
	case errors.Is(err, interpret.ErrUnknownOperation):
		fmt.Fprintln(c.out, "No se pudo reconocer la operación.")
		return
	case err != nil:
		c.logger.ErrorContext(ctx, "Value parsing failed", log.FieldTranscript, text, log.FieldError, err)
		fmt.Fprintln(c.out, "El valor de la transacción no es válido.")
		return
	}

	if !c.confirm(tx) {
		fmt.Fprintln(c.out, "Transacción cancelada por el usuario.")
		return
	}

	ref, err := c.creator.CreateTransaction(ctx, tx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to persist transaction",
			log.FieldKind, tx.Kind, log.FieldAmountPesos, tx.Amount.Pesos, log.FieldError, err)
		fmt.Fprintln(c.out, "No se pudo guardar la transacción.")
		return
	}
	fmt.Fprintf(c.out, "Transacción registrada en %s\n", ref)
}

func (c *Console) confirm(tx core.Transaction) bool {
	fmt.Fprintf(c.out, "Operación detectada: %s\n", strings.ToUpper(string(tx.Kind)))
	fmt.Fprintf(c.out, "Valor detectado: %d COP\n", tx.Amount.Pesos)
	fmt.Fprint(c.out, "¿Deseas guardar esta transacción? (s/n): ")

	line, ok := c.readLine()
	if !ok {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "s"
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}
