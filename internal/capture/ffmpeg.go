package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// FFmpegRecorder shells out to ffmpeg to grab camera and microphone
// input. It writes to a temp file and reads the result back on Stop,
// since webm/mp4 muxers need a seekable output.
type FFmpegRecorder struct {
	// Binary overrides the ffmpeg executable path. Empty means $PATH lookup.
	Binary string
	// VideoDevice and AudioDevice override device autodetection.
	VideoDevice string
	AudioDevice string

	cmd      *exec.Cmd
	stdin    io.WriteCloser
	waitDone chan error
	outPath  string
	stderr   bytes.Buffer
	started  time.Time
}

// NewFFmpegRecorder returns a recorder using the ffmpeg found on $PATH.
func NewFFmpegRecorder() *FFmpegRecorder {
	return &FFmpegRecorder{}
}

// Available reports whether ffmpeg can be found.
func (r *FFmpegRecorder) Available() bool {
	bin := r.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	_, err := exec.LookPath(bin)
	return err == nil
}

func (r *FFmpegRecorder) Start(ctx context.Context) error {
	if r.cmd != nil {
		return fmt.Errorf("capture: recorder already started")
	}

	bin := r.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("capture: ffmpeg not found: %w", err)
	}

	out, err := os.CreateTemp("", "podium-take-*.webm")
	if err != nil {
		return fmt.Errorf("capture: create temp output: %w", err)
	}
	r.outPath = out.Name()
	out.Close()

	args, err := r.inputArgs()
	if err != nil {
		os.Remove(r.outPath)
		r.outPath = ""
		return err
	}
	args = append(args,
		"-c:v", "libvpx-vp9", "-b:v", "1M",
		"-c:a", "libopus",
		"-y", r.outPath,
	)

	// The process must outlive ctx: the caller's context only guards
	// startup, while the recording runs until Stop.
	cmd := exec.Command(bin, args...)
	cmd.Stderr = &r.stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(r.outPath)
		r.outPath = ""
		return fmt.Errorf("capture: open ffmpeg stdin: %w", err)
	}
	r.stdin = stdin
	r.cmd = cmd

	if err := cmd.Start(); err != nil {
		os.Remove(r.outPath)
		r.outPath = ""
		r.cmd = nil
		return fmt.Errorf("capture: start ffmpeg: %w", err)
	}
	r.started = time.Now()
	r.waitDone = make(chan error, 1)
	go func() { r.waitDone <- cmd.Wait() }()

	// Give ffmpeg a moment to fail on device open so permission errors
	// surface at Start rather than Stop.
	select {
	case <-r.waitDone:
		err := r.classifyFailure()
		os.Remove(r.outPath)
		r.outPath = ""
		r.cmd = nil
		return err
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		cmd.Process.Kill()
		if r.stdin != nil {
			r.stdin.Close()
			r.stdin = nil
		}
		<-r.waitDone
		os.Remove(r.outPath)
		r.outPath = ""
		r.cmd = nil
		return ctx.Err()
	}
	return nil
}

func (r *FFmpegRecorder) Stop(ctx context.Context) (*Artifact, error) {
	if r.cmd == nil {
		return nil, fmt.Errorf("capture: recorder not started")
	}
	defer func() {
		if r.outPath != "" {
			os.Remove(r.outPath)
		}
		r.cmd = nil
		r.outPath = ""
		r.stderr.Reset()
	}()

	// "q" on stdin asks ffmpeg to finalize the container cleanly.
	if r.stdin != nil {
		r.stdin.Write([]byte("q"))
		r.stdin.Close()
		r.stdin = nil
	}

	select {
	case err := <-r.waitDone:
		// ffmpeg exits 255 on "q"; a clean file matters more than the code.
		if err != nil && r.stderrLooksLikeDeviceError() {
			return nil, r.classifyFailure()
		}
	case <-time.After(5 * time.Second):
		r.cmd.Process.Kill()
		<-r.waitDone
	case <-ctx.Done():
		r.cmd.Process.Kill()
		<-r.waitDone
		return nil, ctx.Err()
	}

	data, err := os.ReadFile(r.outPath)
	if err != nil {
		return nil, fmt.Errorf("capture: read recording: %w", err)
	}
	art := &Artifact{
		MIMEType: "video/webm",
		Data:     data,
		Duration: time.Since(r.started),
	}
	if err := Validate(art); err != nil {
		return nil, err
	}
	return art, nil
}

// inputArgs builds platform-specific device input flags.
func (r *FFmpegRecorder) inputArgs() ([]string, error) {
	switch runtime.GOOS {
	case "linux":
		video := r.VideoDevice
		if video == "" {
			video = "/dev/video0"
		}
		audio := r.AudioDevice
		if audio == "" {
			audio = "default"
		}
		return []string{
			"-f", "v4l2", "-framerate", "30", "-i", video,
			"-f", "pulse", "-i", audio,
		}, nil
	case "darwin":
		device := r.VideoDevice
		if device == "" {
			device = "0:0"
		}
		return []string{
			"-f", "avfoundation", "-framerate", "30", "-i", device,
		}, nil
	case "windows":
		if r.VideoDevice == "" || r.AudioDevice == "" {
			return nil, fmt.Errorf("capture: on windows set video and audio device names explicitly")
		}
		return []string{
			"-f", "dshow", "-i",
			fmt.Sprintf("video=%s:audio=%s", r.VideoDevice, r.AudioDevice),
		}, nil
	default:
		return nil, fmt.Errorf("capture: unsupported platform %s", runtime.GOOS)
	}
}

func (r *FFmpegRecorder) stderrLooksLikeDeviceError() bool {
	s := strings.ToLower(r.stderr.String())
	return strings.Contains(s, "permission denied") ||
		strings.Contains(s, "device or resource busy") ||
		strings.Contains(s, "no such file or directory") ||
		strings.Contains(s, "cannot open")
}

func (r *FFmpegRecorder) classifyFailure() error {
	s := strings.ToLower(r.stderr.String())
	switch {
	case strings.Contains(s, "permission denied"), strings.Contains(s, "not permitted"):
		return ErrPermissionDenied
	case strings.Contains(s, "no such file or directory"), strings.Contains(s, "cannot find"):
		return ErrNoDevice
	default:
		tail := r.stderr.String()
		if len(tail) > 400 {
			tail = tail[len(tail)-400:]
		}
		return fmt.Errorf("capture: ffmpeg failed: %s", strings.TrimSpace(tail))
	}
}