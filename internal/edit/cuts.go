package edit

import (
	"slices"
	"time"
)

// CutSource is where the raw cut timestamps come from: either Detected or Manual
type CutSource interface {
	rawCuts() []time.Duration
	validate() error
}

// Detected holds boundaries reported by the shot detector
type Detected struct {
	Cuts []time.Duration
}

func (d Detected) rawCuts() []time.Duration { return d.Cuts }

// Detector output is trusted; anything out of range is filtered later
func (d Detected) validate() error { return nil }

// Manual holds cuts supplied by the user, in any order
type Manual struct {
	Cuts []time.Duration
}

func (m Manual) rawCuts() []time.Duration { return m.Cuts }

func (m Manual) validate() error {
	for _, c := range m.Cuts {
		if c < 0 {
			return configErrorf("cuts", "timestamps must not be negative, got %s", c)
		}
	}
	return nil
}

// Normalize turns raw cuts into sorted scene starts inside r. The first start
// is always r.Start and consecutive starts are at least minScene apart; a cut
// closer than that to the previously kept one merges into the preceding scene.
func Normalize(src CutSource, r UsableRange, minScene time.Duration) ([]time.Duration, error) {
	if minScene <= 0 {
		return nil, configErrorf("min-scene-length", "must be positive, got %s", minScene)
	}
	if r.Start >= r.End {
		return nil, &ConfigError{Field: "usable range", Err: ErrEmptyRange}
	}
	if src == nil {
		src = Detected{}
	}
	if err := src.validate(); err != nil {
		return nil, err
	}

	inRange := make([]time.Duration, 0, len(src.rawCuts())+1)
	for _, c := range src.rawCuts() {
		if r.Contains(c) {
			inRange = append(inRange, c)
		}
	}
	slices.Sort(inRange)
	inRange = slices.Compact(inRange)

	if len(inRange) == 0 || inRange[0] != r.Start {
		inRange = slices.Insert(inRange, 0, r.Start)
	}

	starts := []time.Duration{inRange[0]}
	for _, c := range inRange[1:] {
		if c-starts[len(starts)-1] >= minScene {
			starts = append(starts, c)
		}
	}

	return starts, nil
}
