package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keagan/mementoize/internal/config"
	"github.com/keagan/mementoize/internal/edit"
	"github.com/keagan/mementoize/internal/pipeline"
)

func TestApplyOverridesOnlyChangedFlags(t *testing.T) {
	var f cliFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindCutFlags(fs, &f)
	require.NoError(t, fs.Parse([]string{"--threshold", "0.4", "--skip-end", "30"}))

	cfg := config.Default()
	cfg.Cuts.MinSceneLength = 90 // from a config file
	applyOverrides(fs, cfg, f)

	assert.Equal(t, 0.4, cfg.Cuts.Threshold)
	assert.Equal(t, 30.0, cfg.Cuts.SkipEnd)
	assert.Equal(t, 90.0, cfg.Cuts.MinSceneLength)
	assert.Equal(t, 4.0, cfg.Cuts.Overlap)
}

func TestFlagDefaults(t *testing.T) {
	var f cliFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindCutFlags(fs, &f)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, 0.0, f.skipStart)
	assert.Equal(t, 0.0, f.skipEnd)
	assert.Equal(t, 120.0, f.minSceneLength)
	assert.Equal(t, 0.7, f.threshold)
	assert.Equal(t, 4.0, f.overlap)
	assert.Empty(t, f.cuts)
	assert.False(t, f.dryRun)
}

func TestPrintReport(t *testing.T) {
	const s = time.Second
	plan, err := edit.BuildPlan(
		edit.Detected{Cuts: []time.Duration{130 * s, 200 * s}},
		edit.UsableRange{Start: 0, End: 300 * s},
		edit.Options{MinSceneLength: 120 * s, Overlap: 4 * s},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, &pipeline.Result{
		Detected: []time.Duration{130 * s, 200 * s},
		Plan:     plan,
	})

	out := buf.String()
	assert.Contains(t, out, "cuts detected at\n[130.000 200.000]\n")
	assert.Contains(t, out, "2 final cuts at:\n[0.000 130.000]\n")
	assert.Contains(t, out, "monochrome")
}

func TestPrintReportManualSkipsDetected(t *testing.T) {
	plan, err := edit.BuildPlan(
		edit.Manual{Cuts: []time.Duration{0, 10 * time.Second}},
		edit.UsableRange{Start: 0, End: 20 * time.Second},
		edit.Options{MinSceneLength: time.Second},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, &pipeline.Result{Manual: true, Plan: plan})

	assert.NotContains(t, buf.String(), "detected")
	assert.Contains(t, buf.String(), "2 final cuts at:")
}
