package edit

import (
	"fmt"
	"time"

	"github.com/keagan/mementoize/pkg/util"
)

// Filter is the rendering treatment attached to a scene
type Filter int

const (
	// Unmodified scenes keep the source colors
	Unmodified Filter = iota
	// Monochrome scenes are rendered black-and-white
	Monochrome
)

func (f Filter) String() string {
	switch f {
	case Monochrome:
		return "monochrome"
	case Unmodified:
		return "unmodified"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// Scene is the half-open interval [Start, End) of the source video
type Scene struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the length of the scene
func (s Scene) Duration() time.Duration {
	return s.End - s.Start
}

func (s Scene) String() string {
	return fmt.Sprintf("[%s, %s)", util.FormatDuration(s.Start), util.FormatDuration(s.End))
}

// TaggedScene is a scene assigned to one of the two timelines
type TaggedScene struct {
	Scene
	Filter Filter
}

// Kind distinguishes full clips from the repeated tails between them
type Kind int

const (
	ClipSegment Kind = iota
	OverlapSegment
)

func (k Kind) String() string {
	if k == OverlapSegment {
		return "overlap"
	}
	return "clip"
}

// Instruction is one source range of the output, in output order
type Instruction struct {
	Kind   Kind
	Scene  Scene
	Filter Filter
}

// List is the ordered edit list handed to the renderer
type List []Instruction

// Duration returns the total output length, spacers excluded
func (l List) Duration() time.Duration {
	var total time.Duration
	for _, in := range l {
		total += in.Scene.Duration()
	}
	return total
}

// Clips returns only the ClipSegment instructions
func (l List) Clips() []Instruction {
	clips := make([]Instruction, 0, len(l))
	for _, in := range l {
		if in.Kind == ClipSegment {
			clips = append(clips, in)
		}
	}
	return clips
}

// UsableRange is the part of the video where cuts are allowed:
// [skip start, total duration - skip end)
type UsableRange struct {
	Start time.Duration
	End   time.Duration
}

// NewUsableRange derives the usable range from the video length and skip margins
func NewUsableRange(total, skipStart, skipEnd time.Duration) (UsableRange, error) {
	if skipStart < 0 {
		return UsableRange{}, configErrorf("skip-start", "must not be negative, got %s", skipStart)
	}
	if skipEnd < 0 {
		return UsableRange{}, configErrorf("skip-end", "must not be negative, got %s", skipEnd)
	}

	r := UsableRange{Start: skipStart, End: total - skipEnd}
	if r.Start >= r.End {
		return UsableRange{}, &ConfigError{
			Field: "skip-start/skip-end",
			Err:   fmt.Errorf("%w: skip margins %s + %s leave nothing of a %s video", ErrEmptyRange, skipStart, skipEnd, total),
		}
	}
	return r, nil
}

// Contains reports whether t lies inside the range
func (r UsableRange) Contains(t time.Duration) bool {
	return t >= r.Start && t < r.End
}
