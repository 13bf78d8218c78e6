package ffmpeg

import (
	"context"
	"fmt"
	"time"

	"github.com/keagan/mementoize/pkg/util"
)

// SegmentOptions defines one re-encoded piece of the source
type SegmentOptions struct {
	Start        time.Duration
	Duration     time.Duration
	Output       string
	Filter       string
	HasAudio     bool
	Encode       EncodeSettings
	ProgressFunc ProgressFunc
}

// ExtractSegment cuts [Start, Start+Duration) from input and re-encodes it
// with the given video filter
func (e *Executor) ExtractSegment(ctx context.Context, input string, opts SegmentOptions) error {
	if opts.Duration <= 0 {
		return fmt.Errorf("invalid segment duration %s", opts.Duration)
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	e.logger.Debug().
		Str("input", input).
		Str("output", opts.Output).
		Dur("start", opts.Start).
		Dur("duration", opts.Duration).
		Str("filter", opts.Filter).
		Msg("extracting segment")

	runOpts := RunOptions{
		Args:            segmentArgs(input, opts),
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Trace().Str("ffmpeg", line).Msg("segment extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("segment extraction failed: %w", err)
	}
	return nil
}

func segmentArgs(input string, opts SegmentOptions) []string {
	enc := opts.Encode.withDefaults()

	// -ss before -i seeks on the input; with re-encoding this is frame accurate
	args := []string{
		"-ss", util.FormatSeconds(opts.Start),
		"-i", input,
		"-t", util.FormatSeconds(opts.Duration),
		"-map", "0:v:0",
	}
	if opts.HasAudio {
		args = append(args, "-map", "0:a:0")
	}
	if opts.Filter != "" {
		args = append(args, "-vf", opts.Filter)
	}

	args = append(args, videoCodecArgs(enc)...)
	if opts.HasAudio {
		args = append(args, audioCodecArgs(enc)...)
	}

	return append(args, opts.Output)
}

// SpacerOptions defines a black gap between two segments
type SpacerOptions struct {
	Duration time.Duration
	Output   string
	Width    int
	Height   int
	FPS      float64
	HasAudio bool
	Encode   EncodeSettings
}

// GenerateSpacer writes a black clip matching the source geometry, with
// silent audio when the source has audio
func (e *Executor) GenerateSpacer(ctx context.Context, opts SpacerOptions) error {
	if opts.Duration <= 0 {
		return fmt.Errorf("invalid spacer duration %s", opts.Duration)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid spacer size %dx%d", opts.Width, opts.Height)
	}

	e.logger.Debug().
		Str("output", opts.Output).
		Dur("duration", opts.Duration).
		Msg("generating spacer")

	runOpts := RunOptions{
		Args: spacerArgs(opts),
		LogHandler: func(line string) {
			e.logger.Trace().Str("ffmpeg", line).Msg("spacer generation")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("spacer generation failed: %w", err)
	}
	return nil
}

func spacerArgs(opts SpacerOptions) []string {
	enc := opts.Encode.withDefaults()

	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=%dx%d:r=%s", opts.Width, opts.Height, formatFloat(fps)),
	}
	if opts.HasAudio {
		args = append(args,
			"-f", "lavfi",
			"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", DefaultAudioRate),
		)
	}

	args = append(args, "-t", util.FormatSeconds(opts.Duration))
	args = append(args, "-vf", NewFilterBuilder().PixelFormat(DefaultPixelFormat).Build())
	args = append(args, videoCodecArgs(enc)...)
	if opts.HasAudio {
		args = append(args, audioCodecArgs(enc)...)
	}

	return append(args, opts.Output)
}

func videoCodecArgs(enc EncodeSettings) []string {
	return []string{
		"-c:v", enc.VideoCodec,
		"-crf", fmt.Sprintf("%d", enc.CRF),
		"-preset", enc.Preset,
		"-pix_fmt", DefaultPixelFormat,
	}
}

func audioCodecArgs(enc EncodeSettings) []string {
	return []string{
		"-c:a", enc.AudioCodec,
		"-ar", fmt.Sprintf("%d", DefaultAudioRate),
		"-ac", fmt.Sprintf("%d", DefaultAudioChannels),
	}
}
