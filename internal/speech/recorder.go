package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ArecordRecorder captures mono 16kHz LINEAR16 WAV through the ALSA
// `arecord` utility. One fixed-length capture per call; the duration bounds
// how long a spoken command may take.
type ArecordRecorder struct {
	// Device is the ALSA capture device. Empty uses the default.
	Device string
	// Seconds is the capture length. Zero defaults to 5.
	Seconds int
}

func (r *ArecordRecorder) Record(ctx context.Context) ([]byte, error) {
	seconds := r.Seconds
	if seconds <= 0 {
		seconds = 5
	}

	args := []string{
		"-q",
		"-f", "S16_LE",
		"-r", "16000",
		"-c", "1",
		"-t", "wav",
		"-d", strconv.Itoa(seconds),
	}
	if r.Device != "" {
		args = append(args, "-D", r.Device)
	}
	args = append(args, "-") // write to stdout

	cmd := exec.CommandContext(ctx, "arecord", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("arecord: %w (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
