package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/features"
	"go.trai.ch/zerr"
)

func TestBuild(t *testing.T) {
	f, err := features.Build[object](domain.FeatureSpec{
		Name: "median",
		Kind: features.KindPercentile,
		Args: map[string]float64{"p": 50},
	})
	require.NoError(t, err)

	p, ok := f.(*features.Percentile)
	require.True(t, ok)
	assert.Equal(t, "median", p.CustomName())
	assert.Equal(t, "percentile", p.Name())
	assert.Equal(t, 50.0, p.P)
	assert.Equal(t, domain.TypeObject, p.InputType())
}

func TestBuild_Nested(t *testing.T) {
	f, err := features.Build[collection](domain.FeatureSpec{
		Kind: features.KindQuotient,
		Items: []domain.FeatureSpec{
			{Kind: features.KindMaxOverObjects, Items: []domain.FeatureSpec{{Kind: features.KindVoxelCount}}},
			{Kind: features.KindObjectCount},
		},
	})
	require.NoError(t, err)

	q, ok := f.(*features.Quotient[collection])
	require.True(t, ok)
	assert.Equal(t, "quotient", q.CustomName())
	assert.Equal(t, domain.TypeInput, q.InputType())
	assert.IsType(t, &features.MaxOverObjects{}, q.Numerator)
	assert.IsType(t, &features.ObjectCount{}, q.Denominator)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec domain.FeatureSpec
		want error
	}{
		{"unknown kind", domain.FeatureSpec{Kind: "roundness"}, domain.ErrUnknownFeatureKind},
		{"missing argument", domain.FeatureSpec{Kind: features.KindPercentile}, domain.ErrInvalidFeatureSpec},
		{"missing target", domain.FeatureSpec{Kind: features.KindReference}, domain.ErrInvalidFeatureSpec},
		{"wrong item count", domain.FeatureSpec{Kind: features.KindQuotient}, domain.ErrInvalidFeatureSpec},
		{"collection kind", domain.FeatureSpec{Kind: features.KindObjectCount}, domain.ErrInputTypeMismatch},
		{
			"declared for collection",
			domain.FeatureSpec{Kind: features.KindSumIntensity, Input: domain.TypeCollection},
			domain.ErrInputTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := features.Build[object](tt.spec)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_ErrorMetadata(t *testing.T) {
	_, err := features.Build[object](domain.FeatureSpec{Name: "cog", Kind: features.KindCenterOfGravity})
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "error should be of type *zerr.Error")
	assert.Equal(t, "cog", zErr.Metadata()["feature"])
	assert.Equal(t, "axis", zErr.Metadata()["arg"])
}

func TestBuildList(t *testing.T) {
	list, err := features.BuildList[object]([]domain.FeatureSpec{
		{Kind: features.KindSumIntensity},
		{Name: "mean", Kind: features.KindMeanIntensity},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sum-intensity", "mean"}, list.Names())

	_, err = features.BuildList[object]([]domain.FeatureSpec{
		{Kind: features.KindSumIntensity},
		{Kind: features.KindSumIntensity},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateFeature)

	_, err = features.BuildList[object](nil)
	require.ErrorIs(t, err, domain.ErrNoFeatures)
}

func TestBuildShared(t *testing.T) {
	shared, err := features.BuildShared([]domain.FeatureSpec{
		{Name: "area", Kind: features.KindVoxelCount},
		{Name: "n", Kind: features.KindObjectCount},
		{Name: "offset", Kind: features.KindConstant, Args: map[string]float64{"value": 2}},
	}, domain.TypeCollection)
	require.NoError(t, err)
	assert.Equal(t, []string{"area", "n", "offset"}, shared.Names())

	offset, ok := shared.Lookup("offset")
	require.True(t, ok)
	assert.IsType(t, &features.Constant[collection]{}, offset)

	_, err = features.BuildShared([]domain.FeatureSpec{{Kind: features.KindConstant, Args: map[string]float64{"value": 1}}}, domain.TypeInput)
	require.ErrorIs(t, err, domain.ErrUnknownInputType)
}

func TestKinds(t *testing.T) {
	kinds := features.Kinds()
	require.NotEmpty(t, kinds)
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1].Kind, kinds[i].Kind)
	}
}

func TestBuildList_UnlabeledItemsKeepOwnResults(t *testing.T) {
	ratio := func(name string, p float64) domain.FeatureSpec {
		return domain.FeatureSpec{
			Name: name,
			Kind: features.KindQuotient,
			Items: []domain.FeatureSpec{
				{Kind: features.KindPercentile, Args: map[string]float64{"p": p}},
				{Kind: features.KindConstant, Args: map[string]float64{"value": 1}},
			},
		}
	}
	list, err := features.BuildList[object]([]domain.FeatureSpec{ratio("low", 0), ratio("high", 100)})
	require.NoError(t, err)

	s := session(t, newObject("o", 1, 2, 3, 4, 5), domain.TypeObject, nil, domain.InitParams{}, list)
	res, err := s.CalcList(list)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5}, res.Values())
}
