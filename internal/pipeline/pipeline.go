package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/keagan/mementoize/internal/config"
	"github.com/keagan/mementoize/internal/edit"
	"github.com/keagan/mementoize/internal/export"
	"github.com/keagan/mementoize/internal/ffmpeg"
	"github.com/keagan/mementoize/internal/logging"
	"github.com/keagan/mementoize/pkg/util"
)

// OutputSuffix is appended to the input name when no output is given
const OutputSuffix = "mementized"

// Pipeline orchestrates probing, cut planning and rendering
type Pipeline struct {
	logger     zerolog.Logger
	prober     Prober
	detector   Detector
	renderer   Renderer
	renderOpts ffmpeg.RenderOptions
}

// New creates a pipeline backed by the ffmpeg executor
func New(logger zerolog.Logger, appCfg *config.Config) (*Pipeline, error) {
	exec, err := ffmpeg.New(logger, ffmpeg.Options{
		FFmpegPath:  appCfg.FFmpeg.BinaryPath,
		FFprobePath: appCfg.FFmpeg.ProbePath,
		Threads:     appCfg.FFmpeg.Threads,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	return NewWithCollaborators(logger, exec, exec, exec, RenderOptionsFromConfig(appCfg)), nil
}

// NewWithCollaborators creates a pipeline from explicit collaborators
func NewWithCollaborators(logger zerolog.Logger, prober Prober, detector Detector, renderer Renderer, renderOpts ffmpeg.RenderOptions) *Pipeline {
	return &Pipeline{
		logger:     logging.WithComponent(logger, "pipeline"),
		prober:     prober,
		detector:   detector,
		renderer:   renderer,
		renderOpts: renderOpts,
	}
}

// RenderOptionsFromConfig maps the render and ffmpeg sections of the config
func RenderOptionsFromConfig(cfg *config.Config) ffmpeg.RenderOptions {
	return ffmpeg.RenderOptions{
		WorkDir:      cfg.Render.WorkDir,
		FadeIn:       config.Seconds(cfg.Render.FadeIn),
		Spacer:       config.Seconds(cfg.Render.Spacer),
		Workers:      cfg.Render.Workers,
		ShowProgress: cfg.Render.Progress,
		Encode: ffmpeg.EncodeSettings{
			VideoCodec: cfg.FFmpeg.VideoCodec,
			AudioCodec: cfg.FFmpeg.AudioCodec,
			CRF:        cfg.FFmpeg.CRF,
			Preset:     cfg.FFmpeg.Preset,
		},
	}
}

// Run plans the re-cut of input and renders it unless opts.DryRun is set.
// Configuration is validated before any ffmpeg call, and a dry run still
// performs every planning step.
func (p *Pipeline) Run(ctx context.Context, input string, opts Options) (*Result, error) {
	if err := validate(input, opts); err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = util.SuffixedPath(input, OutputSuffix)
	}

	p.logger.Info().
		Str("input", input).
		Bool("manual", len(opts.ManualCuts) > 0).
		Bool("dry_run", opts.DryRun).
		Msg("starting mementoize pipeline")

	info, err := p.prober.ProbeVideo(ctx, input)
	if err != nil {
		return nil, &edit.DetectionError{Input: input, Err: err}
	}

	p.logger.Info().
		Dur("duration", info.Duration).
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("fps", info.FPS).
		Msg("video metadata extracted")

	r, err := edit.NewUsableRange(info.Duration, opts.SkipStart, opts.SkipEnd)
	if err != nil {
		return nil, err
	}

	result := &Result{Input: input, Output: output, Info: info}

	var src edit.CutSource
	if len(opts.ManualCuts) > 0 {
		result.Manual = true
		src = edit.Manual{Cuts: opts.ManualCuts}
	} else {
		detected, err := p.detector.DetectScenes(ctx, input, opts.Threshold)
		if err != nil {
			return nil, &edit.DetectionError{Input: input, Err: err}
		}
		result.Detected = detected
		src = edit.Detected{Cuts: detected}

		p.logger.Debug().
			Strs("cuts", FormatCuts(detected)).
			Msg("cuts detected")
	}

	plan, err := edit.BuildPlan(src, r, edit.Options{
		MinSceneLength: opts.MinSceneLength,
		Overlap:        opts.Overlap,
	})
	if err != nil {
		return nil, err
	}
	result.Plan = plan

	p.logger.Info().
		Int("cuts", len(plan.Cuts)).
		Int("past", len(plan.Past)).
		Int("present", len(plan.Present)).
		Int("instructions", len(plan.List)).
		Dur("output_duration", plan.List.Duration()).
		Msg("edit list ready")

	if opts.EDLPath != "" {
		err := export.WriteEDL(opts.EDLPath, plan.List, export.EDLOptions{
			MediaPath: absOrSame(input),
			FrameRate: info.FPS,
		})
		if err != nil {
			return nil, &edit.RenderError{Output: opts.EDLPath, Err: err}
		}
		p.logger.Info().Str("edl", opts.EDLPath).Msg("edit decision list written")
	}

	if opts.DryRun {
		p.logger.Info().Msg("dry run, skipping render")
		return result, nil
	}

	// the color transition runs over the overlap length
	renderOpts := p.renderOpts
	renderOpts.Transition = opts.Overlap
	renderOpts.Info = info

	if err := p.renderer.RenderEditList(ctx, input, plan.List, output, renderOpts); err != nil {
		return nil, &edit.RenderError{Output: output, Err: err}
	}
	result.Rendered = true

	p.logger.Info().Str("output", output).Msg("mementoize pipeline complete")
	return result, nil
}

func validate(input string, opts Options) error {
	if strings.TrimSpace(input) == "" {
		return &edit.ConfigError{Field: "input", Err: fmt.Errorf("input path cannot be empty")}
	}
	if opts.SkipStart < 0 {
		return &edit.ConfigError{Field: "skip-start", Err: fmt.Errorf("must not be negative")}
	}
	if opts.SkipEnd < 0 {
		return &edit.ConfigError{Field: "skip-end", Err: fmt.Errorf("must not be negative")}
	}
	if opts.MinSceneLength <= 0 {
		return &edit.ConfigError{Field: "min-scene-length", Err: fmt.Errorf("must be positive")}
	}
	if opts.Overlap < 0 {
		return &edit.ConfigError{Field: "overlap", Err: fmt.Errorf("must not be negative")}
	}
	// threshold only matters for detection, but a bad value is still a bad config
	if opts.Threshold <= 0 || opts.Threshold >= 1 {
		return &edit.ConfigError{Field: "threshold", Err: fmt.Errorf("must be between 0 and 1, got %g", opts.Threshold)}
	}
	if opts.Output != "" && filepath.Clean(opts.Output) == filepath.Clean(input) {
		return &edit.ConfigError{Field: "output", Err: fmt.Errorf("output would overwrite input")}
	}
	return nil
}

// FormatCuts renders timestamps as decimal seconds for display
func FormatCuts(ds []time.Duration) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = util.FormatSeconds(d)
	}
	return out
}

func absOrSame(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
