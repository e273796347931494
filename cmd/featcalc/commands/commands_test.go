package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/featcalc/cmd/featcalc/commands"
	"go.trai.ch/featcalc/internal/app"
	"go.trai.ch/featcalc/internal/build"
)

type mockApp struct {
	runFunc  func(ctx context.Context, opts app.RunOptions) error
	listed   bool
	verbose  bool
	jsonLogs bool
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) List(context.Context) error {
	m.listed = true
	return nil
}

func (m *mockApp) ConfigureLogging(verbose, jsonLogs bool) {
	m.verbose = verbose
	m.jsonLogs = jsonLogs
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"run", "-c", "cfg.yaml", "-d", "cells.yaml", "-w", "3",
			"--suppress-errors", "--reuse-caches", "-o", "yaml", "--verbose",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.RunOptions{
			ConfigPath:     "cfg.yaml",
			InputPath:      "cells.yaml",
			Workers:        3,
			SuppressErrors: true,
			ReuseCaches:    true,
			Format:         "yaml",
		}, captured)
		assert.True(t, mock.verbose)
		assert.False(t, mock.jsonLogs)
	})

	t.Run("uses defaults", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "--json-logs"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "features.yaml", captured.ConfigPath)
		assert.Equal(t, "data.yaml", captured.InputPath)
		assert.Equal(t, app.FormatTable, captured.Format)
		assert.Zero(t, captured.Workers)
		assert.True(t, mock.jsonLogs)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_List(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)
	cli.SetArgs([]string{"list"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.listed)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "featcalc version "+build.Version)
	assert.Contains(t, buf.String(), "commit: "+build.Commit)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "featcalc version "+build.Version)
}
