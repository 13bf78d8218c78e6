package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DetectScenes finds scene changes in video using ffmpeg scene detection.
// threshold must lie in (0, 1); lower values report more cuts.
func (e *Executor) DetectScenes(ctx context.Context, input string, threshold float64) ([]time.Duration, error) {
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold must be between 0 and 1, got %g", threshold)
	}

	e.logger.Info().
		Str("input", input).
		Float64("threshold", threshold).
		Msg("detecting scene changes")

	var stderrBuf bytes.Buffer
	var mu sync.Mutex

	opts := RunOptions{
		Args: sceneDetectArgs(input, threshold),
		LogHandler: func(line string) {
			mu.Lock()
			stderrBuf.WriteString(line + "\n")
			mu.Unlock()
		},
	}

	if err := e.Run(ctx, opts); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !noFramesSelected(err) {
			return nil, fmt.Errorf("scene detection failed: %w", err)
		}
		e.logger.Debug().Err(err).Msg("no frames passed the scene filter")
	}

	mu.Lock()
	output := stderrBuf.String()
	mu.Unlock()

	scenes := parseSceneOutput(output)
	e.logger.Info().Int("cuts", len(scenes)).Msg("scene detection complete")
	return scenes, nil
}

func sceneDetectArgs(input string, threshold float64) []string {
	return []string{
		"-i", input,
		"-an",
		"-filter:v", fmt.Sprintf("select='gt(scene,%s)',showinfo", strconv.FormatFloat(threshold, 'f', -1, 64)),
		"-f", "null",
		"-",
	}
}

// noFramesSelected reports whether ffmpeg failed only because select let no
// frame through, which happens on footage without a single cut
func noFramesSelected(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Conversion failed") ||
		strings.Contains(msg, "Invalid return value") ||
		strings.Contains(msg, "Output file is empty")
}

// parseSceneOutput extracts scene change timestamps from showinfo output
func parseSceneOutput(output string) []time.Duration {
	var scenes []time.Duration

	for _, line := range strings.Split(output, "\n") {
		_, rest, ok := strings.Cut(line, "pts_time:")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		if seconds, err := strconv.ParseFloat(fields[0], 64); err == nil {
			scenes = append(scenes, time.Duration(seconds*float64(time.Second)))
		}
	}

	return scenes
}
