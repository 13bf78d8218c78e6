package edit

import "time"

// Compose interleaves past and present by index (past[0], present[0],
// past[1], ...) and appends whatever is left of the longer half. Every clip
// except the last one in the list is followed by an overlap repeating its own
// tail, in its own filter.
func Compose(past, present []TaggedScene, overlap time.Duration) (List, error) {
	if overlap < 0 {
		return nil, configErrorf("overlap", "must not be negative, got %s", overlap)
	}

	n := min(len(past), len(present))
	order := make([]TaggedScene, 0, len(past)+len(present))
	for i := 0; i < n; i++ {
		order = append(order, past[i], present[i])
	}
	order = append(order, past[n:]...)
	order = append(order, present[n:]...)

	list := make(List, 0, 2*len(order))
	for i, ts := range order {
		list = append(list, Instruction{Kind: ClipSegment, Scene: ts.Scene, Filter: ts.Filter})

		if i == len(order)-1 {
			break
		}
		if tail, ok := tailOf(ts.Scene, overlap); ok {
			list = append(list, Instruction{Kind: OverlapSegment, Scene: tail, Filter: ts.Filter})
		}
	}

	return list, nil
}

// tailOf returns the last d of s, clipped to the whole scene
func tailOf(s Scene, d time.Duration) (Scene, bool) {
	if d <= 0 || s.Duration() <= 0 {
		return Scene{}, false
	}
	if d > s.Duration() {
		d = s.Duration()
	}
	return Scene{Start: s.End - d, End: s.End}, true
}
