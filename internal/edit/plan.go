package edit

import "time"

// Options are the scene and overlap constraints of one run
type Options struct {
	MinSceneLength time.Duration
	Overlap        time.Duration
}

// Plan is every intermediate product of one planning run
type Plan struct {
	Range   UsableRange
	Cuts    []time.Duration
	Scenes  []Scene
	Past    []TaggedScene
	Present []TaggedScene
	List    List
}

// BuildPlan runs normalize, scene building, partitioning and composition
func BuildPlan(src CutSource, r UsableRange, opts Options) (*Plan, error) {
	if opts.Overlap < 0 {
		return nil, configErrorf("overlap", "must not be negative, got %s", opts.Overlap)
	}

	cuts, err := Normalize(src, r, opts.MinSceneLength)
	if err != nil {
		return nil, err
	}

	scenes, err := BuildScenes(cuts, r.End)
	if err != nil {
		return nil, err
	}

	past, present := Partition(scenes)

	list, err := Compose(past, present, opts.Overlap)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Range:   r,
		Cuts:    cuts,
		Scenes:  scenes,
		Past:    past,
		Present: present,
		List:    list,
	}, nil
}
