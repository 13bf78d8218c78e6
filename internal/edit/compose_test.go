package edit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(f Filter, scenes ...Scene) []TaggedScene {
	out := make([]TaggedScene, len(scenes))
	for i, sc := range scenes {
		out[i] = TaggedScene{Scene: sc, Filter: f}
	}
	return out
}

func span(start, end float64) Scene {
	return Scene{Start: time.Duration(start * float64(time.Second)), End: time.Duration(end * float64(time.Second))}
}

func clipScenes(l List) []Scene {
	var out []Scene
	for _, in := range l.Clips() {
		out = append(out, in.Scene)
	}
	return out
}

func TestComposeInterleaveOrder(t *testing.T) {
	a, b, c, d := span(0, 10), span(10, 20), span(20, 30), span(30, 40)

	list, err := Compose(tagged(Monochrome, a, b), tagged(Unmodified, c, d), 0)
	require.NoError(t, err)

	require.Len(t, list, 4)
	assert.Equal(t, []Scene{a, c, b, d}, clipScenes(list))
	for _, in := range list {
		assert.Equal(t, ClipSegment, in.Kind)
	}
}

func TestComposeOverlaps(t *testing.T) {
	a, b, c, d := span(0, 10), span(10, 20), span(20, 30), span(30, 40)

	list, err := Compose(tagged(Monochrome, a, b), tagged(Unmodified, c, d), 4*s)
	require.NoError(t, err)

	want := List{
		{Kind: ClipSegment, Scene: a, Filter: Monochrome},
		{Kind: OverlapSegment, Scene: span(6, 10), Filter: Monochrome},
		{Kind: ClipSegment, Scene: c, Filter: Unmodified},
		{Kind: OverlapSegment, Scene: span(26, 30), Filter: Unmodified},
		{Kind: ClipSegment, Scene: b, Filter: Monochrome},
		{Kind: OverlapSegment, Scene: span(16, 20), Filter: Monochrome},
		{Kind: ClipSegment, Scene: d, Filter: Unmodified},
	}
	assert.Equal(t, want, list)
}

func TestComposeOverlapClippedToScene(t *testing.T) {
	short := span(0, 3)
	long := span(3, 30)

	list, err := Compose(tagged(Monochrome, short), tagged(Unmodified, long), 10*s)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, OverlapSegment, list[1].Kind)
	assert.Equal(t, short, list[1].Scene)
	assert.Equal(t, 3*s, list[1].Scene.Duration())
}

func TestComposeLeftoverPast(t *testing.T) {
	a, b, c := span(0, 10), span(10, 20), span(20, 30)
	d, e := span(30, 40), span(40, 50)

	list, err := Compose(tagged(Monochrome, a, b, c), tagged(Unmodified, d, e), 0)
	require.NoError(t, err)

	assert.Equal(t, []Scene{a, d, b, e, c}, clipScenes(list))
	assert.Equal(t, Monochrome, list[len(list)-1].Filter)
}

func TestComposeLeftoverPresent(t *testing.T) {
	a := span(0, 10)
	b, c := span(10, 20), span(20, 30)

	list, err := Compose(tagged(Monochrome, a), tagged(Unmodified, b, c), 2*s)
	require.NoError(t, err)

	assert.Equal(t, []Scene{a, b, c}, clipScenes(list))
	assert.Equal(t, ClipSegment, list[len(list)-1].Kind)
	assert.Equal(t, Unmodified, list[len(list)-1].Filter)
}

func TestComposeNoTrailingOverlap(t *testing.T) {
	list, err := Compose(tagged(Monochrome, span(0, 10)), nil, 4*s)
	require.NoError(t, err)
	assert.Equal(t, List{{Kind: ClipSegment, Scene: span(0, 10), Filter: Monochrome}}, list)
}

func TestComposeEmpty(t *testing.T) {
	list, err := Compose(nil, nil, 4*s)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestComposeNegativeOverlap(t *testing.T) {
	_, err := Compose(nil, nil, -s)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "overlap", cfgErr.Field)
}

func TestListDuration(t *testing.T) {
	list := List{
		{Kind: ClipSegment, Scene: span(0, 10)},
		{Kind: OverlapSegment, Scene: span(6, 10)},
		{Kind: ClipSegment, Scene: span(10, 12.5)},
	}
	assert.Equal(t, 16500*time.Millisecond, list.Duration())
	assert.Len(t, list.Clips(), 2)
}
