// ABOUTME: Domain models for competitive-analysis results returned by the model
// ABOUTME: List fields are always non-nil so they serialize as empty arrays

package domain

// AnalysisResult is the structured competitive analysis of a text or a site
type AnalysisResult struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	UniqueOffers    []string `json:"unique_offers"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// NewAnalysisResult returns an AnalysisResult with every list initialized
func NewAnalysisResult() AnalysisResult {
	return AnalysisResult{
		Strengths:       []string{},
		Weaknesses:      []string{},
		UniqueOffers:    []string{},
		Recommendations: []string{},
	}
}

// Visual style score bounds for image analysis
const (
	MinVisualStyleScore     = 0
	MaxVisualStyleScore     = 10
	DefaultVisualStyleScore = 5
)

// ImageAnalysisResult is the structured marketing analysis of an image
type ImageAnalysisResult struct {
	Description         string   `json:"description"`
	MarketingInsights   []string `json:"marketing_insights"`
	VisualStyleScore    int      `json:"visual_style_score" minimum:"0" maximum:"10"`
	VisualStyleAnalysis string   `json:"visual_style_analysis"`
	Recommendations     []string `json:"recommendations"`
}

// ClampVisualStyleScore forces a score into [0,10]
func ClampVisualStyleScore(score int) int {
	if score < MinVisualStyleScore {
		return MinVisualStyleScore
	}
	if score > MaxVisualStyleScore {
		return MaxVisualStyleScore
	}
	return score
}
