// Package export writes an edit list in interchange formats that editing
// suites can import.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keagan/mementoize/internal/edit"
)

const reelName = "AX"

// EDLOptions describes the source the edit list refers to
type EDLOptions struct {
	Title     string
	MediaPath string
	FrameRate float64
}

// GenerateEDL renders list as a CMX3600 edit decision list. Record
// timecodes run back to back in output order.
func GenerateEDL(list edit.List, opts EDLOptions) string {
	fps := int(math.Round(opts.FrameRate))
	if fps <= 0 {
		fps = 30
	}

	isDropFrame := math.Abs(opts.FrameRate-29.97) < 0.01 || math.Abs(opts.FrameRate-59.94) < 0.01

	title := opts.Title
	if title == "" {
		title = "MEMENTOIZED"
	}

	timecode := func(d time.Duration) string { return durationToTimecode(d, fps) }

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame {
		timecode = func(d time.Duration) string { return durationToDropFrameTimecode(d, fps) }
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	var record time.Duration
	for i, in := range list {
		length := in.Scene.Duration()

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, reelName, "V",
				timecode(in.Scene.Start),
				timecode(in.Scene.End),
				timecode(record),
				timecode(record+length)),
			fmt.Sprintf("* FROM CLIP NAME:  %s %s", strings.ToUpper(in.Kind.String()), strings.ToUpper(in.Filter.String())),
		)
		if opts.MediaPath != "" {
			lines = append(lines, fmt.Sprintf("* MEDIA PATH:  %s", opts.MediaPath))
		}

		record += length
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// WriteEDL writes the EDL for list to path
func WriteEDL(path string, list edit.List, opts EDLOptions) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("edl path is required")
	}
	if opts.Title == "" {
		opts.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := os.WriteFile(path, []byte(GenerateEDL(list, opts)), 0644); err != nil {
		return fmt.Errorf("failed to write edl: %w", err)
	}
	return nil
}

func durationToTimecode(d time.Duration, fps int) string {
	totalFrames := int(math.Round(d.Seconds() * float64(fps)))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}

// durationToDropFrameTimecode counts frames at the NTSC rate (nominal fps *
// 1000/1001) and skips the frame labels that drop-frame timecode omits: the
// first fps/15 of every minute except each tenth minute.
func durationToDropFrameTimecode(d time.Duration, fps int) string {
	frame := int(math.Round(d.Seconds() * float64(fps) * 1000 / 1001))

	drop := fps / 15
	framesPerMinute := fps*60 - drop
	framesPer10Minutes := framesPerMinute*10 + drop

	tens := frame / framesPer10Minutes
	rem := frame % framesPer10Minutes
	frame += drop * 9 * tens
	if rem > drop {
		frame += drop * ((rem - drop) / framesPerMinute)
	}

	frames := frame % fps
	totalSeconds := frame / fps
	return fmt.Sprintf("%02d:%02d:%02d;%02d", totalSeconds/3600, totalSeconds/60%60, totalSeconds%60, frames)
}
