package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/featcalc/internal/adapters/config"
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeConfig(t, `
version: "1"
input: collection
params:
  threshold: 0.5
shared:
  - name: area
    kind: voxel-count
    input: object
features:
  - name: n
    kind: object-count
  - name: mean-area
    kind: mean-over-objects
    items:
      - kind: reference
        target: area
  - name: p90
    kind: percentile
    args: {p: 90}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, domain.TypeCollection, cfg.InputType)
	v, err := cfg.Params.Value("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	require.Len(t, cfg.Shared, 1)
	assert.Equal(t, domain.FeatureSpec{Name: "area", Kind: "voxel-count", Input: domain.TypeObject}, cfg.Shared[0])

	require.Len(t, cfg.Features, 3)
	assert.Equal(t, "mean-over-objects", cfg.Features[1].Kind)
	assert.Equal(t, []domain.FeatureSpec{{Kind: "reference", Target: "area"}}, cfg.Features[1].Items)
	assert.Equal(t, map[string]float64{"p": 90}, cfg.Features[2].Args)
}

func TestLoad_ShortInputNames(t *testing.T) {
	cfg, err := config.Parse([]byte("input: input/object\nfeatures:\n  - kind: sum-intensity\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.TypeObject, cfg.InputType)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := config.Load(path)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "error should be of type *zerr.Error")
	assert.Equal(t, path, zErr.Metadata()["path"])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		meta    map[string]any
	}{
		{
			name:    "no features",
			content: "input: object\n",
			want:    domain.ErrNoFeatures,
		},
		{
			name:    "unknown input",
			content: "input: image\nfeatures:\n  - kind: sum-intensity\n",
			want:    domain.ErrUnknownInputType,
			meta:    map[string]any{"input_type": "image"},
		},
		{
			name:    "generic input",
			content: "input: input\nfeatures:\n  - kind: sum-intensity\n",
			want:    domain.ErrUnknownInputType,
		},
		{
			name:    "missing kind",
			content: "input: object\nfeatures:\n  - name: a\n  - name: b\n    items:\n      - name: c\n",
			want:    domain.ErrInvalidFeatureSpec,
			meta:    map[string]any{"at": "features[0]"},
		},
		{
			name:    "nested missing kind",
			content: "input: object\nfeatures:\n  - kind: quotient\n    items:\n      - kind: constant\n      - name: c\n",
			want:    domain.ErrInvalidFeatureSpec,
			meta:    map[string]any{"at": "features[0].items[1]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.content))
			require.ErrorIs(t, err, tt.want)

			if tt.meta != nil {
				zErr, ok := err.(*zerr.Error)
				require.True(t, ok, "error should be of type *zerr.Error")
				for k, v := range tt.meta {
					assert.Equal(t, v, zErr.Metadata()[k])
				}
			}
		})
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	_, err := config.Parse([]byte("version: \"2\"\ninput: object\nfeatures:\n  - kind: sum-intensity\n"))
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "error should be of type *zerr.Error")
	assert.Equal(t, "2", zErr.Metadata()["version"])
}

func TestParse_Malformed(t *testing.T) {
	_, err := config.Parse([]byte("features: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoader_LogsFeatureCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	path := writeConfig(t, "input: object\nfeatures:\n  - kind: sum-intensity\n  - kind: voxel-count\n")
	log.EXPECT().Debug("loaded 2 features from " + path)

	cfg, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Features, 2)
}
