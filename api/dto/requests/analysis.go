// ABOUTME: Request DTOs for the analysis endpoints
// ABOUTME: Schema tags drive huma validation and the OpenAPI document

package requests

import "strings"

// TextAnalysisRequest is the body of POST /analyze_text
type TextAnalysisRequest struct {
	Text string `json:"text" minLength:"10" doc:"Competitor text to analyze, at least 10 characters"`
}

// ParseDemoRequest is the body of POST /parse_demo
type ParseDemoRequest struct {
	URL string `json:"url" minLength:"1" doc:"Competitor site URL; https:// is assumed when no scheme is given" example:"example.com"`
}

// Normalize trims surrounding whitespace from the URL
func (r *ParseDemoRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
}
