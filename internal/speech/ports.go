// Package speech defines the capture and transcription ports. The external
// recognizer is an opaque collaborator with exactly two failure modes, both
// surfaced as warnings by the console rather than fatal errors.
package speech

import (
	"context"
	"errors"
)

var (
	// ErrUnintelligible means the service could not make out any words.
	ErrUnintelligible = errors.New("audio not understood")
	// ErrService means the recognition service could not be reached.
	ErrService = errors.New("recognition service unreachable")
)

type (
	// Recorder captures one utterance from the microphone as WAV bytes.
	Recorder interface {
		Record(ctx context.Context) ([]byte, error)
	}

	// Recognizer transcribes captured audio into lowercase text.
	Recognizer interface {
		Recognize(ctx context.Context, audio []byte, lang string) (string, error)
	}
)
