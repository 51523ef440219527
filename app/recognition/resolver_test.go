package recognition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsForModel(t *testing.T) {
	tests := []struct {
		model     string
		metric    Metric
		threshold float64
	}{
		{"ArcFace", MetricEuclideanL2, 1.20},
		{"arcface-r100", MetricEuclideanL2, 1.20},
		{"Facenet", MetricCosine, 0.30},
		{"Facenet512", MetricCosine, 0.30},
		{"VGG-Face", MetricCosine, 0.30},
		{"", MetricCosine, 0.30},
	}
	for _, tt := range tests {
		metric, threshold := DefaultsForModel(tt.model)
		assert.Equal(t, tt.metric, metric, "model %q", tt.model)
		assert.Equal(t, tt.threshold, threshold, "model %q", tt.model)
	}
}

func TestParamsForModel_Overrides(t *testing.T) {
	p := ParamsForModel("ArcFace", 0, 0)
	assert.Equal(t, 1.20, p.MaxDistance)
	assert.Equal(t, DefaultMinMargin, p.MinMargin)
	assert.Equal(t, MetricEuclideanL2, p.Metric)

	p = ParamsForModel("ArcFace", 0.95, 0.10)
	assert.Equal(t, 0.95, p.MaxDistance)
	assert.Equal(t, 0.10, p.MinMargin)
	assert.Equal(t, MetricEuclideanL2, p.Metric)
}

func TestResolve_NoCandidates(t *testing.T) {
	d := Resolve(nil, ParamsForModel("ArcFace", 0, 0))
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonNoCandidates, d.Reason)
}

func TestResolve_AcceptsBestWithinThreshold(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0.04, Metric: MetricEuclideanL2}
	d := Resolve([]Candidate{
		{Identity: "db/alice/1.jpg", Distance: 0.80},
		{Identity: "db/bob/1.jpg", Distance: 1.10},
	}, params)
	require.True(t, d.Accepted)
	assert.Equal(t, "db/alice/1.jpg", d.Identity)
	assert.Equal(t, 0.80, d.Distance)
}

func TestResolve_SortsUnorderedInput(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0.04}
	input := []Candidate{
		{Identity: "db/bob/1.jpg", Distance: 1.10},
		{Identity: "db/alice/1.jpg", Distance: 0.80},
		{Identity: "db/carol/1.jpg", Distance: 1.15},
	}
	d := Resolve(input, params)
	require.True(t, d.Accepted)
	assert.Equal(t, "db/alice/1.jpg", d.Identity)

	// input slice stays untouched
	assert.Equal(t, "db/bob/1.jpg", input[0].Identity)
}

func TestResolve_AboveThreshold(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0.04}
	d := Resolve([]Candidate{{Identity: "db/alice/1.jpg", Distance: 1.25}}, params)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonAboveThreshold, d.Reason)
	assert.Equal(t, 1.25, d.Distance)
}

func TestResolve_AboveThresholdWinsOverMargin(t *testing.T) {
	// Even with a huge gap to the runner-up, a best candidate past the
	// threshold is rejected.
	params := Params{MaxDistance: 1.20, MinMargin: 0.04}
	d := Resolve([]Candidate{
		{Identity: "db/alice/1.jpg", Distance: 1.30},
		{Identity: "db/bob/1.jpg", Distance: 5.00},
	}, params)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonAboveThreshold, d.Reason)
}

func TestResolve_LowMargin(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0.04}
	d := Resolve([]Candidate{
		{Identity: "db/alice/1.jpg", Distance: 0.80},
		{Identity: "db/bob/1.jpg", Distance: 0.82},
	}, params)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonLowMargin, d.Reason)
	assert.Equal(t, 0.80, d.Distance)
	assert.InDelta(t, 0.02, d.Margin, 1e-9)
}

func TestResolve_MarginExactlyAtMinimumAccepts(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0.04}
	d := Resolve([]Candidate{
		{Identity: "db/alice/1.jpg", Distance: 0.80},
		{Identity: "db/bob/1.jpg", Distance: 0.84},
	}, params)
	assert.True(t, d.Accepted)
}

func TestResolve_TieWithZeroMinMarginAccepts(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0}
	d := Resolve([]Candidate{
		{Identity: "db/alice/1.jpg", Distance: 0.80},
		{Identity: "db/bob/1.jpg", Distance: 0.80},
	}, params)
	assert.True(t, d.Accepted)
}

func TestResolve_SingleCandidateSkipsMarginCheck(t *testing.T) {
	params := Params{MaxDistance: 1.20, MinMargin: 0.04}
	d := Resolve([]Candidate{{Identity: "db/alice/1.jpg", Distance: 0.80}}, params)
	assert.True(t, d.Accepted)
}
