package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/keagan/mementoize/pkg/util"
)

// FilterBuilder helps construct ffmpeg video filter chains
type FilterBuilder struct {
	filters []string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]string, 0),
	}
}

// FPS adds an fps filter
func (fb *FilterBuilder) FPS(fps float64) *FilterBuilder {
	if fps <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fps=%s", formatFloat(fps)))
	return fb
}

// Monochrome drops all saturation
func (fb *FilterBuilder) Monochrome() *FilterBuilder {
	fb.filters = append(fb.filters, "hue=s=0")
	return fb
}

// FadeToColor ramps saturation from zero to normal over d
func (fb *FilterBuilder) FadeToColor(d time.Duration) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("hue=s='min(1,t/%s)'", util.FormatSeconds(d)))
	return fb
}

// FadeIn fades from black over d, starting at the first frame
func (fb *FilterBuilder) FadeIn(d time.Duration) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fade=t=in:st=0:d=%s", util.FormatSeconds(d)))
	return fb
}

// PixelFormat forces the output pixel format
func (fb *FilterBuilder) PixelFormat(format string) *FilterBuilder {
	if format == "" {
		return fb
	}
	fb.filters = append(fb.filters, "format="+format)
	return fb
}

// Custom adds a custom filter string
func (fb *FilterBuilder) Custom(filter string) *FilterBuilder {
	fb.filters = append(fb.filters, filter)
	return fb
}

// Build returns the complete filter string joined with commas
func (fb *FilterBuilder) Build() string {
	if len(fb.filters) == 0 {
		return ""
	}
	return strings.Join(fb.filters, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
