// ABOUTME: Typed construction stage that turns untyped model data into domain results
// ABOUTME: Missing or mistyped fields fall back to defaults instead of failing

package normalizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"competitor-monitor-api/core/domain"
)

// String returns m[key] if it is a string, otherwise "".
func String(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// StringList returns m[key] as a list of strings. Scalar elements are
// formatted, nulls and nested objects are skipped. Anything that is not an
// array yields an empty, non-nil list.
func StringList(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			out = append(out, val)
		case float64:
			out = append(out, strconv.FormatFloat(val, 'f', -1, 64))
		case bool:
			out = append(out, fmt.Sprint(val))
		}
	}
	return out
}

// Int returns m[key] as an integer. JSON numbers are truncated toward zero,
// numeric strings are parsed, anything else yields def.
func Int(m map[string]interface{}, key string, def int) int {
	switch val := m[key].(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return def
		}
		if val > math.MaxInt32 {
			return math.MaxInt32
		}
		if val < math.MinInt32 {
			return math.MinInt32
		}
		return int(val)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return Int(map[string]interface{}{key: n}, key, def)
		}
	}
	return def
}

// ToAnalysisResult builds an AnalysisResult from extracted model data
func ToAnalysisResult(m map[string]interface{}) domain.AnalysisResult {
	return domain.AnalysisResult{
		Strengths:       StringList(m, "strengths"),
		Weaknesses:      StringList(m, "weaknesses"),
		UniqueOffers:    StringList(m, "unique_offers"),
		Recommendations: StringList(m, "recommendations"),
		Summary:         String(m, "summary"),
	}
}

// ToImageAnalysisResult builds an ImageAnalysisResult from extracted model
// data. The visual style score defaults to 5 and is clamped to [0,10].
func ToImageAnalysisResult(m map[string]interface{}) domain.ImageAnalysisResult {
	score := Int(m, "visual_style_score", domain.DefaultVisualStyleScore)
	return domain.ImageAnalysisResult{
		Description:         String(m, "description"),
		MarketingInsights:   StringList(m, "marketing_insights"),
		VisualStyleScore:    domain.ClampVisualStyleScore(score),
		VisualStyleAnalysis: String(m, "visual_style_analysis"),
		Recommendations:     StringList(m, "recommendations"),
	}
}

// Analysis extracts and normalizes a text or site analysis in one step
func Analysis(text string) domain.AnalysisResult {
	return ToAnalysisResult(ExtractJSON(text))
}

// ImageAnalysis extracts and normalizes an image analysis in one step
func ImageAnalysis(text string) domain.ImageAnalysisResult {
	return ToImageAnalysisResult(ExtractJSON(text))
}
