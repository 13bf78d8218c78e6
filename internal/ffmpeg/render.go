package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/keagan/mementoize/internal/edit"
	"github.com/keagan/mementoize/pkg/util"
)

// RenderEditList encodes every instruction of list as its own segment, joins
// them (with optional black spacers) and moves the result to output only once
// it is complete
func (e *Executor) RenderEditList(ctx context.Context, input string, list edit.List, output string, opts RenderOptions) error {
	if err := validateRender(input, list, output, opts); err != nil {
		return fmt.Errorf("invalid render options: %w", err)
	}

	info := opts.Info
	if info == nil {
		probed, err := e.ProbeVideo(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to probe input: %w", err)
		}
		info = probed
	}

	workDir := filepath.Join(opts.WorkDir, "mementoize-"+uuid.NewString())
	if err := util.EnsureDir(workDir); err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Int("instructions", len(list)).
		Dur("duration", list.Duration()).
		Str("work_dir", workDir).
		Msg("starting render")

	segments, err := e.encodeSegments(ctx, input, list, info, workDir, opts)
	if err != nil {
		return err
	}

	pieces := segments
	if opts.Spacer > 0 && len(list.Clips()) > 1 {
		spacer := filepath.Join(workDir, "spacer.mp4")
		err := e.GenerateSpacer(ctx, SpacerOptions{
			Duration: opts.Spacer,
			Output:   spacer,
			Width:    info.Width,
			Height:   info.Height,
			FPS:      info.FPS,
			HasAudio: info.HasAudio,
			Encode:   opts.Encode,
		})
		if err != nil {
			return err
		}
		pieces = interleaveSpacer(list, segments, spacer)
	}

	partial := partialPath(output)
	if err := e.Concat(ctx, ConcatOptions{Inputs: pieces, Output: partial, WorkDir: workDir}); err != nil {
		util.CleanupFiles(partial)
		return err
	}

	if err := os.Rename(partial, output); err != nil {
		util.CleanupFiles(partial)
		return fmt.Errorf("failed to move finished render into place: %w", err)
	}

	e.logger.Info().Str("output", output).Msg("render completed")
	return nil
}

// encodeSegments renders each instruction concurrently, bounded by opts.Workers
func (e *Executor) encodeSegments(ctx context.Context, input string, list edit.List, info *VideoInfo, workDir string, opts RenderOptions) ([]string, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	bar := newSegmentBar(len(list), opts.ShowProgress)
	defer bar.Close()

	transition := transitionIndex(list)

	paths := make([]string, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range list {
		paths[i] = filepath.Join(workDir, fmt.Sprintf("segment_%04d.mp4", i))

		var toColor time.Duration
		if i == transition {
			toColor = min(opts.Transition, in.Scene.Duration())
		}
		segOpts := SegmentOptions{
			Start:    in.Scene.Start,
			Duration: in.Scene.Duration(),
			Output:   paths[i],
			Filter:   instructionFilter(in, info.FPS, opts.FadeIn, toColor),
			HasAudio: info.HasAudio,
			Encode:   opts.Encode,
		}

		i, in := i, in // per-iteration copy (module targets go 1.21)
		g.Go(func() error {
			if err := e.ExtractSegment(gctx, input, segOpts); err != nil {
				return fmt.Errorf("instruction %d (%s %s): %w", i, in.Kind, in.Scene, err)
			}
			_ = bar.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// instructionFilter builds the video filter for one instruction. Overlaps
// continue the previous clip, so only full clips fade in. A positive toColor
// makes an unmodified instruction start black-and-white and regain color.
func instructionFilter(in edit.Instruction, fps float64, fadeIn, toColor time.Duration) string {
	fb := NewFilterBuilder().FPS(fps)

	switch {
	case in.Filter == edit.Monochrome:
		fb.Monochrome()
	case toColor > 0:
		fb.FadeToColor(toColor)
	}
	if in.Kind == edit.ClipSegment {
		fb.FadeIn(min(fadeIn, in.Scene.Duration()))
	}

	return fb.PixelFormat(DefaultPixelFormat).Build()
}

// transitionIndex returns the unmodified instruction that directly follows
// the last monochrome one, or -1 when the list never changes from
// monochrome to color
func transitionIndex(list edit.List) int {
	for i := len(list) - 1; i > 0; i-- {
		if list[i].Filter == edit.Unmodified && list[i-1].Filter == edit.Monochrome {
			return i
		}
	}
	return -1
}

// interleaveSpacer puts the spacer before every clip but the first; an
// overlap stays attached to the clip it repeats
func interleaveSpacer(list edit.List, segments []string, spacer string) []string {
	out := make([]string, 0, 2*len(segments))
	for i, seg := range segments {
		if i > 0 && list[i].Kind == edit.ClipSegment {
			out = append(out, spacer)
		}
		out = append(out, seg)
	}
	return out
}

// partialPath is a hidden sibling of output keeping its extension, so ffmpeg
// still picks the right muxer and the rename stays on one filesystem
func partialPath(output string) string {
	dir, name := filepath.Split(output)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.partial%s", base, uuid.NewString()[:8], ext))
}

func newSegmentBar(total int, visible bool) *progressbar.ProgressBar {
	if !visible {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Rendering segments"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func validateRender(input string, list edit.List, output string, opts RenderOptions) error {
	if input == "" {
		return fmt.Errorf("input path is required")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}
	if len(list) == 0 {
		return fmt.Errorf("edit list is empty")
	}
	if filepath.Clean(input) == filepath.Clean(output) {
		return fmt.Errorf("output would overwrite input")
	}
	if opts.Encode.CRF < 0 || opts.Encode.CRF > 51 {
		return fmt.Errorf("CRF must be between 0 and 51")
	}
	if opts.FadeIn < 0 || opts.Spacer < 0 || opts.Transition < 0 {
		return fmt.Errorf("fade-in, spacer and transition must not be negative")
	}
	for i, in := range list {
		if in.Scene.Duration() <= 0 {
			return fmt.Errorf("instruction %d has empty range %s", i, in.Scene)
		}
	}
	return nil
}
