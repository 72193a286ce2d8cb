package capture

import (
	"context"
	"time"
)

// MockRecorder is a deterministic Recorder for testing and for the
// mock provider's end-to-end dry runs.
type MockRecorder struct {
	StartErr error
	StopErr  error
	Result   *Artifact

	Started bool
	Stopped bool
}

// NewMockRecorder returns a recorder that yields a small canned take.
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		Result: &Artifact{
			MIMEType: "video/webm",
			Data:     []byte("mock-take"),
			Duration: 30 * time.Second,
		},
	}
}

func (m *MockRecorder) Start(_ context.Context) error {
	if m.StartErr != nil {
		return m.StartErr
	}
	m.Started = true
	return nil
}

func (m *MockRecorder) Stop(_ context.Context) (*Artifact, error) {
	m.Stopped = true
	if m.StopErr != nil {
		return nil, m.StopErr
	}
	return m.Result, nil
}
