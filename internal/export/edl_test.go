package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keagan/mementoize/internal/edit"
)

func scene(start, end time.Duration) edit.Scene {
	return edit.Scene{Start: start, End: end}
}

func TestGenerateEDL(t *testing.T) {
	list := edit.List{
		{Kind: edit.ClipSegment, Scene: scene(0, 30*time.Second), Filter: edit.Monochrome},
		{Kind: edit.OverlapSegment, Scene: scene(26*time.Second, 30*time.Second), Filter: edit.Monochrome},
		{Kind: edit.ClipSegment, Scene: scene(70*time.Second, 100*time.Second), Filter: edit.Unmodified},
	}

	edl := GenerateEDL(list, EDLOptions{Title: "Film", MediaPath: "/media/film.mp4", FrameRate: 25})

	assert.Contains(t, edl, "TITLE: Film")
	assert.Contains(t, edl, "FCM: NON-DROP FRAME")
	assert.Contains(t, edl, "001  AX       V     C        00:00:00:00 00:00:30:00 00:00:00:00 00:00:30:00")
	assert.Contains(t, edl, "002  AX       V     C        00:00:26:00 00:00:30:00 00:00:30:00 00:00:34:00")
	assert.Contains(t, edl, "003  AX       V     C        00:01:10:00 00:01:40:00 00:00:34:00 00:01:04:00")
	assert.Contains(t, edl, "* FROM CLIP NAME:  OVERLAP MONOCHROME")
	assert.Contains(t, edl, "* FROM CLIP NAME:  CLIP UNMODIFIED")
	assert.Equal(t, 3, strings.Count(edl, "* MEDIA PATH:  /media/film.mp4"))
}

func TestGenerateEDLDefaults(t *testing.T) {
	list := edit.List{{Kind: edit.ClipSegment, Scene: scene(0, 500*time.Millisecond)}}

	edl := GenerateEDL(list, EDLOptions{FrameRate: 29.97})

	assert.Contains(t, edl, "TITLE: MEMENTOIZED")
	assert.Contains(t, edl, "FCM: DROP FRAME")
	assert.Contains(t, edl, "00:00:00;00 00:00:00;15")
	assert.NotContains(t, edl, "MEDIA PATH")
}

func TestDurationToTimecode(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		fps  int
		want string
	}{
		{name: "zero", d: 0, fps: 30, want: "00:00:00:00"},
		{name: "fractional second", d: 500 * time.Millisecond, fps: 30, want: "00:00:00:15"},
		{name: "one minute", d: time.Minute, fps: 25, want: "00:01:00:00"},
		{name: "one hour", d: time.Hour, fps: 24, want: "01:00:00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, durationToTimecode(tc.d, tc.fps))
		})
	}
}

func TestDurationToDropFrameTimecode(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		fps  int
		want string
	}{
		{name: "zero", d: 0, fps: 30, want: "00:00:00;00"},
		{name: "one second", d: time.Second, fps: 30, want: "00:00:01;00"},
		// frame 1800 is labelled ;02 since ;00 and ;01 are dropped
		{name: "first dropped minute", d: 1800 * 1001 * time.Second / 30000, fps: 30, want: "00:01:00;02"},
		{name: "tenth minute keeps its labels", d: 17982 * 1001 * time.Second / 30000, fps: 30, want: "00:10:00;00"},
		{name: "59.94", d: 3600 * 1001 * time.Second / 60000, fps: 60, want: "00:01:00;04"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, durationToDropFrameTimecode(tc.d, tc.fps))
		})
	}
}

func TestWriteEDL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.edl")
	list := edit.List{{Kind: edit.ClipSegment, Scene: scene(0, time.Second)}}

	require.NoError(t, WriteEDL(path, list, EDLOptions{FrameRate: 25}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "TITLE: cut\n"))

	assert.Error(t, WriteEDL(" ", list, EDLOptions{}))
}
