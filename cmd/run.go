package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/app"
	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/llm"
	"github.com/abhisek/podium/internal/store"
	"github.com/abhisek/podium/internal/topicgen"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ledger, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	prof, onboarded := ledger.Profile()
	orchestrator := coach.New(ledger, prof, ledger.History(), onboarded)

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w\n\nSet GEMINI_API_KEY (video analysis requires Gemini) and try again", err)
	}

	var recorder capture.Recorder
	ffmpeg := capture.NewFFmpegRecorder()
	if ffmpeg.Available() {
		recorder = ffmpeg
	} else {
		fmt.Fprintln(os.Stderr, "ffmpeg not found on PATH; using a silent mock recorder.")
		recorder = capture.NewMockRecorder()
	}

	opts := app.Options{
		Orchestrator: orchestrator,
		Topics:       topicgen.New(provider, topicgen.DefaultConfig()),
		Analyzer:     analysis.New(provider, analysis.DefaultConfig()),
		Recorder:     recorder,
	}

	return app.Run(opts)
}
