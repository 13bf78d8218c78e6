package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00.000", FormatDuration(0))
	assert.Equal(t, "00:01:30.500", FormatDuration(90*time.Second+500*time.Millisecond))
	assert.Equal(t, "01:00:02.000", FormatDuration(time.Hour+2*time.Second))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", FormatSeconds(0))
	assert.Equal(t, "4.000", FormatSeconds(4*time.Second))
	assert.Equal(t, "12.250", FormatSeconds(12250*time.Millisecond))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "45", want: 45 * time.Second},
		{in: " 45.5 ", want: 45500 * time.Millisecond},
		{in: "1:10", want: 70 * time.Second},
		{in: "01:00:30", want: time.Hour + 30*time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "-5", "1:x"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseCutList(t *testing.T) {
	cuts, err := ParseCutList("0, 30,70,,2:00")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0, 30 * time.Second, 70 * time.Second, 120 * time.Second}, cuts)

	cuts, err = ParseCutList("  ")
	require.NoError(t, err)
	assert.Nil(t, cuts)

	_, err = ParseCutList("0,ten")
	assert.Error(t, err)
}

func TestParseFrameRate(t *testing.T) {
	assert.Equal(t, 30.0, ParseFrameRate("30/1"))
	assert.InDelta(t, 29.97, ParseFrameRate("30000/1001"), 0.001)
	assert.Equal(t, 0.0, ParseFrameRate("30"))
	assert.Equal(t, 0.0, ParseFrameRate("30/0"))
}

func TestSuffixedPath(t *testing.T) {
	assert.Equal(t, "/videos/film_mementized.mp4", SuffixedPath("/videos/film.mp4", "mementized"))
	assert.Equal(t, "clip_mementized", SuffixedPath("clip", "mementized"))
}
