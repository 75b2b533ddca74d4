// ABOUTME: Domain models for pages fetched through the headless browser
// ABOUTME: ParsedPage carries either a screenshot or an error, SiteAnalysis is the API view

package domain

// Paragraph selection limits used by the page fetcher
const (
	MinParagraphLength = 50
	MaxParagraphLength = 500
)

// ParsedPage is the result of one fetch attempt.
// After a fetch at most one of Screenshot and Error is set; both empty is a
// degraded but valid page.
type ParsedPage struct {
	URL            string `json:"url"`
	Title          string `json:"title,omitempty"`
	H1             string `json:"h1,omitempty"`
	FirstParagraph string `json:"first_paragraph,omitempty"`
	Screenshot     []byte `json:"screenshot,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Failed reports whether the fetch produced an error
func (p ParsedPage) Failed() bool {
	return p.Error != ""
}

// HasScreenshot reports whether screenshot bytes were captured
func (p ParsedPage) HasScreenshot() bool {
	return len(p.Screenshot) > 0
}

// SiteAnalysis combines the extracted page fields with the model analysis
type SiteAnalysis struct {
	URL            string          `json:"url"`
	Title          *string         `json:"title,omitempty"`
	H1             *string         `json:"h1,omitempty"`
	FirstParagraph *string         `json:"first_paragraph,omitempty"`
	Analysis       *AnalysisResult `json:"analysis,omitempty"`
	Error          *string         `json:"error,omitempty"`
}
