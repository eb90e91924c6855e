package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchOptions_Clamp(t *testing.T) {
	tests := []struct {
		name    string
		in      SearchOptions
		wantLim int
		wantSim float64
	}{
		{"zero values take defaults", SearchOptions{}, DefaultSearchLimit, DefaultMinSimilarity},
		{"limit below range", SearchOptions{Limit: -3, MinSimilarity: 0.5}, MinSearchLimit, 0.5},
		{"limit above range", SearchOptions{Limit: 50, MinSimilarity: 0.5}, MaxSearchLimit, 0.5},
		{"similarity below range", SearchOptions{Limit: 5, MinSimilarity: -0.2}, 5, 0},
		{"similarity above range", SearchOptions{Limit: 5, MinSimilarity: 1.7}, 5, 1},
		{"valid untouched", SearchOptions{Limit: 7, MinSimilarity: 0.33}, 7, 0.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp()
			assert.Equal(t, tt.wantLim, got.Limit)
			assert.InDelta(t, tt.wantSim, got.MinSimilarity, 1e-9)
		})
	}
}

func TestAdaptiveThreshold(t *testing.T) {
	// Short queries loosen the cutoff.
	assert.InDelta(t, 0.3, AdaptiveThreshold("solo", 0.4), 1e-9)
	assert.InDelta(t, 0.3, AdaptiveThreshold("two words", 0.4), 1e-9)

	// Medium queries are unchanged.
	assert.InDelta(t, 0.4, AdaptiveThreshold("three word query", 0.4), 1e-9)
	assert.InDelta(t, 0.4, AdaptiveThreshold("a query of seven words in total", 0.4), 1e-9)

	// Long queries tighten it.
	assert.InDelta(t, 0.45, AdaptiveThreshold("a much longer query with lots of descriptive words", 0.4), 1e-9)
}

func TestAdaptiveThreshold_Bounds(t *testing.T) {
	// The floor holds even when the base is already low.
	assert.InDelta(t, DynamicThresholdFloor, AdaptiveThreshold("hi", 0.32), 1e-9)

	// The ceiling holds even when the base is already high.
	long := "one two three four five six seven eight nine"
	assert.InDelta(t, DynamicThresholdCeiling, AdaptiveThreshold(long, 0.49), 1e-9)
}

func TestRelevanceLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "Highly Relevant"},
		{0.8, "Highly Relevant"},
		{0.7, "Very Relevant"},
		{0.55, "Relevant"},
		{0.35, "Somewhat Relevant"},
		{0.1, LowRelevanceLabel},
		{-0.4, LowRelevanceLabel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RelevanceLabel(tt.score, DefaultRelevanceBands), "score %v", tt.score)
	}
}

func TestRelevanceLabel_CustomBands(t *testing.T) {
	bands := []RelevanceBand{
		{Threshold: 0.9, Label: "Exact"},
		{Threshold: 0.2, Label: "Loose"},
	}
	assert.Equal(t, "Exact", RelevanceLabel(0.91, bands))
	assert.Equal(t, "Loose", RelevanceLabel(0.5, bands))
	assert.Equal(t, LowRelevanceLabel, RelevanceLabel(0.1, bands))
}
