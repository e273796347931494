package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/featcalc/internal/adapters/config"
	"go.trai.ch/featcalc/internal/adapters/dataset"
	"go.trai.ch/featcalc/internal/adapters/telemetry"
	"go.trai.ch/featcalc/internal/app"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// newComponents wires a real App with file loaders and a mocked logger and telemetry.
func newComponents(t *testing.T, log *mocks.MockLogger, out *bytes.Buffer) ComponentProvider {
	t.Helper()
	ctrl := gomock.NewController(t)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	tele := mocks.NewMockTelemetry(ctrl)
	tele.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(context.Background(), vertex).AnyTimes()

	var logger ports.Logger = log
	application := app.New(
		config.NewLoader(logger),
		dataset.NewLoader(logger),
		logger,
		telemetry.NewNoOpTracer(),
		tele,
	).WithOutput(out)

	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: logger, Telemetry: tele}, func() {}, nil
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const featureConfig = `version: "1"
input: object
features:
  - name: sum
    kind: sum-intensity
  - name: max
    kind: max-intensity
`

// TestRun_Success verifies that run returns 0 when the calculation succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	cfg := writeFile(t, dir, "features.yaml", featureConfig)
	data := writeFile(t, dir, "data.yaml", `objects:
  - name: a
    voxels:
      - {x: 0, y: 0, z: 0, intensity: 2}
      - {x: 1, y: 0, z: 0, intensity: 5}
`)

	out := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run", "-c", cfg, "-d", data, "-o", "yaml"}, stderr, newComponents(t, log, out))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, out.String(), "values: [7, 5]")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_LoadError verifies that run returns 1 and logs when the configuration cannot be read.
func TestRun_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).Times(1)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	exitCode := run(context.Background(), []string{"run", "-c", missing}, new(bytes.Buffer), newComponents(t, log, new(bytes.Buffer)))

	assert.Equal(t, 1, exitCode)
}

// TestRun_CalculationFailed verifies the dedicated exit code for failed rows.
func TestRun_CalculationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).Times(1)

	dir := t.TempDir()
	cfg := writeFile(t, dir, "features.yaml", featureConfig)
	data := writeFile(t, dir, "data.yaml", `objects:
  - name: empty
    voxels: []
`)

	out := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run", "-c", cfg, "-d", data}, new(bytes.Buffer), newComponents(t, log, out))

	assert.Equal(t, 2, exitCode)
	assert.Empty(t, out.String())
}
