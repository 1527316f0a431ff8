package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammal/difffilter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDefault(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	s := out.String()
	assert.Contains(t, s, "# order=2 tau=0.1 step=0.01 convention=direct")
	for _, name := range []string{"A = ", "B = ", "C = ", "D = "} {
		assert.Contains(t, s, name)
	}
	assert.NotContains(t, s, "NaN")
}

func TestRunOrderZero(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-order", "0"}, &out))
	assert.Contains(t, out.String(), "A = []")
}

func TestRunSimulation(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-convention", "negated", "-samples", "5"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// Five samples with time and three observations each
	last := strings.Split(lines[len(lines)-1], "\t")
	assert.Len(t, last, 4)
	assert.Equal(t, "0.04", last[0])
}

func TestRunPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "step.png")
	var out bytes.Buffer
	require.NoError(t, run([]string{"-convention", "negated", "-samples", "50", "-plot", path}, &out))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRunConfig(t *testing.T) {
	doc := "filters:\n  - {order: 1, time_constant: 1, step: 0.1, convention: negated}\n  - {order: 3, time_constant: 0.5, step: 0.01}\n"
	path := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", path}, &out))
	s := out.String()
	assert.Contains(t, s, "# order=1 tau=1 step=0.1 convention=negated")
	assert.Contains(t, s, "# order=3 tau=0.5 step=0.01 convention=direct\n")
}

func TestRunInvalid(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-tau", "-1"}, &out)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	err = run([]string{"-order", "100000"}, &out)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	err = run([]string{"-convention", "tustin"}, &out)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	assert.Error(t, run([]string{"-nope"}, &out))
}
