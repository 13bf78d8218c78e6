package edit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenScenes(n int) []Scene {
	scenes := make([]Scene, n)
	for i := range scenes {
		scenes[i] = Scene{Start: time.Duration(i) * 10 * s, End: time.Duration(i+1) * 10 * s}
	}
	return scenes
}

func TestPartitionSizes(t *testing.T) {
	for total := 0; total <= 9; total++ {
		past, present := Partition(evenScenes(total))
		assert.Len(t, past, (total+1)/2, "past for %d scenes", total)
		assert.Len(t, present, total/2, "present for %d scenes", total)
	}
}

func TestPartitionOddMiddleIsPast(t *testing.T) {
	scenes := evenScenes(5)
	past, present := Partition(scenes)

	require.Len(t, past, 3)
	require.Len(t, present, 2)
	assert.Equal(t, scenes[2], past[2].Scene)
	assert.Equal(t, scenes[3], present[0].Scene)
}

func TestPartitionTagsAndOrder(t *testing.T) {
	scenes := evenScenes(4)
	past, present := Partition(scenes)

	for i, ts := range past {
		assert.Equal(t, Monochrome, ts.Filter)
		assert.Equal(t, scenes[i], ts.Scene)
	}
	for i, ts := range present {
		assert.Equal(t, Unmodified, ts.Filter)
		assert.Equal(t, scenes[len(past)+i], ts.Scene)
	}
}
