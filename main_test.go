package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	config := `{
	// tiny, fast world
	"tick_interval": "1ms",
	"initial_entities": 5,
	"log_level": "warn",
}`
	require.NoError(t, afero.WriteFile(fs, "world.jsonc", []byte(config), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd(fs)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--config", "world.jsonc", "--worlds", "2", "--ticks", "3", "--rows", "2"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	require.Contains(t, out.String(), "WORLD world-0")
	require.Contains(t, out.String(), "WORLD world-1")
}

func TestRunCommandReportFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	cmd := newRootCmd(fs)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--ticks", "1", "--report", "report.txt", "--log-level", "error"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	require.Empty(t, out.String())
	report, err := afero.ReadFile(fs, "report.txt")
	require.NoError(t, err)
	require.Contains(t, string(report), "WORLD world-0")
}

func TestRunCommandErrors(t *testing.T) {
	for _, args := range [][]string{
		{"run", "--worlds", "0"},
		{"run", "--config", "missing.json"},
		{"run", "--log-level", "loud"},
	} {
		cmd := newRootCmd(afero.NewMemMapFs())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.Error(t, cmd.ExecuteContext(context.Background()), args)
	}
}
