// Package google adapts the Google Cloud Speech-to-Text API to the speech
// recognizer port.
package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	speechv1 "google.golang.org/api/speech/v1"

	"finanzas/internal/speech"
)

type Client struct {
	svc *speechv1.Service
}

var _ speech.Recognizer = (*Client)(nil)

// NewFromEnv creates a recognizer using Service Account credentials from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	credentialsJSON, err := credentialsFromEnv()
	if err != nil {
		return nil, err
	}

	svc, err := speechv1.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(speechv1.CloudPlatformScope))
	if err != nil {
		return nil, fmt.Errorf("create speech service: %w", err)
	}

	return &Client{svc: svc}, nil
}

func credentialsFromEnv() ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		credentialsJSON, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return credentialsJSON, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Recognize sends one mono 16kHz LINEAR16 WAV capture to the API and
// returns the top transcription alternative, lowercased. No transcription
// in the response maps to speech.ErrUnintelligible; transport and API
// failures map to speech.ErrService.
func (c *Client) Recognize(ctx context.Context, audio []byte, lang string) (string, error) {
	if c.svc == nil {
		return "", errors.New("speech service not initialized")
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty capture", speech.ErrUnintelligible)
	}

	req := &speechv1.RecognizeRequest{
		Config: &speechv1.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: 16000,
			LanguageCode:    lang,
		},
		Audio: &speechv1.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}

	resp, err := c.svc.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: %v", speech.ErrService, err)
	}

	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			if t := strings.TrimSpace(alt.Transcript); t != "" {
				return strings.ToLower(t), nil
			}
		}
	}
	return "", speech.ErrUnintelligible
}
