package pipeline

import (
	"context"
	"time"

	"github.com/keagan/mementoize/internal/edit"
	"github.com/keagan/mementoize/internal/ffmpeg"
)

// Prober reads source metadata
type Prober interface {
	ProbeVideo(ctx context.Context, path string) (*ffmpeg.VideoInfo, error)
}

// Detector finds shot boundaries
type Detector interface {
	DetectScenes(ctx context.Context, input string, threshold float64) ([]time.Duration, error)
}

// Renderer turns an edit list into the output file
type Renderer interface {
	RenderEditList(ctx context.Context, input string, list edit.List, output string, opts ffmpeg.RenderOptions) error
}

// Options configures one run
type Options struct {
	SkipStart      time.Duration
	SkipEnd        time.Duration
	MinSceneLength time.Duration
	Threshold      float64
	Overlap        time.Duration

	// ManualCuts bypasses detection when non-empty
	ManualCuts []time.Duration

	DryRun  bool
	Output  string
	EDLPath string
}

// Result describes what a run computed and produced
type Result struct {
	Input    string
	Output   string
	Info     *ffmpeg.VideoInfo
	Manual   bool
	Detected []time.Duration
	Plan     *edit.Plan
	Rendered bool
}
