package edit

// Partition splits scenes into the monochrome past (first half, rounded up)
// and the unmodified present. Both halves keep chronological order.
func Partition(scenes []Scene) (past, present []TaggedScene) {
	split := (len(scenes) + 1) / 2

	past = make([]TaggedScene, 0, split)
	for _, s := range scenes[:split] {
		past = append(past, TaggedScene{Scene: s, Filter: Monochrome})
	}

	present = make([]TaggedScene, 0, len(scenes)-split)
	for _, s := range scenes[split:] {
		present = append(present, TaggedScene{Scene: s, Filter: Unmodified})
	}

	return past, present
}
