package edit

import (
	"fmt"
	"time"
)

// BuildScenes tiles [starts[0], usableEnd) with one scene per start
func BuildScenes(starts []time.Duration, usableEnd time.Duration) ([]Scene, error) {
	if len(starts) == 0 {
		return nil, &ConfigError{Field: "scene starts", Err: ErrNoScenes}
	}
	if usableEnd <= starts[0] {
		return nil, configErrorf("scene starts", "usable end %s is not after first start %s", usableEnd, starts[0])
	}

	scenes := make([]Scene, 0, len(starts))
	for i, start := range starts {
		end := usableEnd
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if end <= start {
			return nil, &ConfigError{
				Field: "scene starts",
				Err:   fmt.Errorf("starts must be strictly increasing and before %s, got %s then %s", usableEnd, start, end),
			}
		}
		scenes = append(scenes, Scene{Start: start, End: end})
	}

	return scenes, nil
}
