package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rawFixture        = "../../data/mock/stormglass_weather_3_hours.json"
	normalizedFixture = "../../data/mock/stormglass_weather_3_hours_normalized.json"
)

func TestRun_CheckedInFixtureIsCurrent(t *testing.T) {
	require.NoError(t, run([]string{"-in", rawFixture, "-out", normalizedFixture, "-check"}))
}

func TestRun_WriteThenCheck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sg.json")

	require.NoError(t, run([]string{"-in", rawFixture, "-out", out, "-source", "sg"}))
	require.NoError(t, run([]string{"-in", rawFixture, "-out", out, "-source", "sg", "-check"}))

	err := run([]string{"-in", rawFixture, "-out", out, "-source", "noaa", "-check"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale")
}

func TestRun_Errors(t *testing.T) {
	assert.ErrorContains(t, run(nil), "missing required flags")
	assert.Error(t, run([]string{"-in", rawFixture, "-out", "x.json", "-source", "nope"}))
	assert.ErrorContains(t, run([]string{"-in", "does-not-exist.json", "-out", "x.json"}), "read")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	assert.ErrorContains(t, run([]string{"-in", bad, "-out", "x.json"}), "decode")
}
