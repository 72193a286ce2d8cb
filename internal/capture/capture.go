// Package capture records speech-practice video from the local camera
// and microphone. The terminal cannot render a live preview, so capture
// runs headless: start, speak, stop, and the encoded artifact comes back
// as bytes ready to attach to an analysis request.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Artifact is a finished recording.
type Artifact struct {
	MIMEType string
	Data     []byte
	Duration time.Duration
}

// ErrPermissionDenied indicates the camera or microphone could not be
// opened, typically because the OS denied device access.
var ErrPermissionDenied = errors.New("capture: camera or microphone access denied")

// ErrNoDevice indicates no usable capture device was found.
var ErrNoDevice = errors.New("capture: no capture device found")

// Recorder captures a single take. Implementations are not safe for
// concurrent use; a practice session owns one Recorder at a time.
type Recorder interface {
	// Start begins recording. It returns ErrPermissionDenied or
	// ErrNoDevice when the devices cannot be opened.
	Start(ctx context.Context) error

	// Stop ends recording and returns the encoded artifact.
	Stop(ctx context.Context) (*Artifact, error)
}

// Validate rejects artifacts the analyzer cannot work with.
func Validate(a *Artifact) error {
	if a == nil || len(a.Data) == 0 {
		return errors.New("capture: empty recording")
	}
	if a.MIMEType == "" {
		return errors.New("capture: recording has no MIME type")
	}
	if a.Duration > 0 && a.Duration < 2*time.Second {
		return fmt.Errorf("capture: recording too short (%s)", a.Duration.Round(time.Millisecond))
	}
	return nil
}
