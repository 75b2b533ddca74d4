package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysis_Defaults(t *testing.T) {
	result := Analysis("I cannot help")

	assert.NotNil(t, result.Strengths)
	assert.NotNil(t, result.Weaknesses)
	assert.NotNil(t, result.UniqueOffers)
	assert.NotNil(t, result.Recommendations)
	assert.Empty(t, result.Strengths)
	assert.Empty(t, result.Summary)
}

func TestAnalysis_Populated(t *testing.T) {
	result := Analysis("```json\n" + `{
		"strengths": ["fast delivery", "low price"],
		"weaknesses": ["weak brand"],
		"unique_offers": ["free returns"],
		"recommendations": ["run ads"],
		"summary": "solid competitor"
	}` + "\n```")

	assert.Equal(t, []string{"fast delivery", "low price"}, result.Strengths)
	assert.Equal(t, []string{"weak brand"}, result.Weaknesses)
	assert.Equal(t, []string{"free returns"}, result.UniqueOffers)
	assert.Equal(t, []string{"run ads"}, result.Recommendations)
	assert.Equal(t, "solid competitor", result.Summary)
}

func TestAnalysis_WrongTypesFallBack(t *testing.T) {
	result := Analysis(`{"strengths": "not a list", "weaknesses": null, "summary": 42}`)

	assert.Equal(t, []string{}, result.Strengths)
	assert.Equal(t, []string{}, result.Weaknesses)
	assert.Equal(t, "", result.Summary)
}

func TestStringList_MixedElements(t *testing.T) {
	m := map[string]interface{}{
		"items": []interface{}{"a", 2.5, true, nil, map[string]interface{}{"x": 1}},
	}

	assert.Equal(t, []string{"a", "2.5", "true"}, StringList(m, "items"))
}

func TestImageAnalysis_ScoreHandling(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"missing score defaults to 5", `{"description": "banner"}`, 5},
		{"wrong type defaults to 5", `{"visual_style_score": "great"}`, 5},
		{"numeric string parsed", `{"visual_style_score": "8"}`, 8},
		{"fractional truncated", `{"visual_style_score": 7.9}`, 7},
		{"negative clamped", `{"visual_style_score": -5}`, 0},
		{"too high clamped", `{"visual_style_score": 99}`, 10},
		{"huge clamped", `{"visual_style_score": 1e300}`, 10},
		{"in range kept", `{"visual_style_score": 6}`, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImageAnalysis(tt.in)
			assert.Equal(t, tt.want, result.VisualStyleScore)
			assert.GreaterOrEqual(t, result.VisualStyleScore, 0)
			assert.LessOrEqual(t, result.VisualStyleScore, 10)
		})
	}
}

func TestImageAnalysis_Fields(t *testing.T) {
	result := ImageAnalysis(`{
		"description": "a red banner",
		"marketing_insights": ["urgency"],
		"visual_style_score": 7,
		"visual_style_analysis": "bold",
		"recommendations": ["softer palette"]
	}`)

	assert.Equal(t, "a red banner", result.Description)
	assert.Equal(t, []string{"urgency"}, result.MarketingInsights)
	assert.Equal(t, "bold", result.VisualStyleAnalysis)
	assert.Equal(t, []string{"softer palette"}, result.Recommendations)
}

func TestImageAnalysis_Empty(t *testing.T) {
	result := ImageAnalysis("")

	assert.Equal(t, 5, result.VisualStyleScore)
	assert.NotNil(t, result.MarketingInsights)
	assert.NotNil(t, result.Recommendations)
}
