package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"competitor-monitor-api/api/dto/responses"
	"competitor-monitor-api/core/domain"
)

// Output formats
const (
	formatHuman = "human"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// render prints v in a machine format, or calls human
func render(w io.Writer, format string, v any, human func(io.Writer)) error {
	switch format {
	case formatJSON:
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(output))
	case formatYAML:
		output, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(output))
	default:
		if human != nil {
			human(w)
		}
	}
	return nil
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

func printError(w io.Writer, msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(w, "✗ %s\n", msg)
}

// printList prints a titled numbered list, or nothing when it is empty
func printList(w io.Writer, title *color.Color, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	title.Fprintln(w, heading)
	for i, item := range items {
		fmt.Fprintf(w, "   %d. %s\n", i+1, item)
	}
	fmt.Fprintln(w)
}

func printAnalysis(w io.Writer, analysis *domain.AnalysisResult) {
	if analysis == nil {
		return
	}

	fmt.Fprintln(w)
	if analysis.Summary != "" {
		color.New(color.FgWhite, color.Bold).Fprintln(w, "SUMMARY:")
		fmt.Fprintf(w, "   %s\n\n", analysis.Summary)
	}
	printList(w, color.New(color.FgGreen, color.Bold), "STRENGTHS:", analysis.Strengths)
	printList(w, color.New(color.FgRed, color.Bold), "WEAKNESSES:", analysis.Weaknesses)
	printList(w, color.New(color.FgYellow, color.Bold), "UNIQUE OFFERS:", analysis.UniqueOffers)
	printList(w, color.New(color.FgCyan, color.Bold), "RECOMMENDATIONS:", analysis.Recommendations)
}

func printImageAnalysis(w io.Writer, analysis *domain.ImageAnalysisResult) {
	if analysis == nil {
		return
	}

	fmt.Fprintln(w)
	color.New(color.FgWhite, color.Bold).Fprintln(w, "DESCRIPTION:")
	fmt.Fprintf(w, "   %s\n\n", analysis.Description)

	scoreColor := scoreColor(analysis.VisualStyleScore)
	scoreColor.Fprintf(w, "VISUAL STYLE: %d/10\n", analysis.VisualStyleScore)
	if analysis.VisualStyleAnalysis != "" {
		fmt.Fprintf(w, "   %s\n", analysis.VisualStyleAnalysis)
	}
	fmt.Fprintln(w)

	printList(w, color.New(color.FgYellow, color.Bold), "MARKETING INSIGHTS:", analysis.MarketingInsights)
	printList(w, color.New(color.FgCyan, color.Bold), "RECOMMENDATIONS:", analysis.Recommendations)
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 8:
		return color.New(color.FgGreen, color.Bold)
	case score >= 5:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printSite(w io.Writer, site *domain.SiteAnalysis) {
	if site == nil {
		return
	}

	fmt.Fprintln(w)
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "SITE: %s\n", site.URL)
	fmt.Fprintf(w, "   Title: %s\n", valueOr(site.Title, "N/A"))
	fmt.Fprintf(w, "   H1: %s\n", valueOr(site.H1, "N/A"))
	if site.FirstParagraph != nil {
		fmt.Fprintf(w, "   First paragraph: %s\n", *site.FirstParagraph)
	}

	printAnalysis(w, site.Analysis)
}

func printHistory(w io.Writer, history responses.HistoryResponse) {
	if history.Total == 0 {
		fmt.Fprintln(w, color.HiBlackString("History is empty"))
		return
	}

	for i, item := range history.Items {
		fmt.Fprintf(w, "%d. %s %s\n", i+1,
			color.CyanString("[%s]", item.RequestType),
			color.HiBlackString(item.Timestamp.Local().Format("2006-01-02 15:04:05")))
		fmt.Fprintf(w, "   %s\n", item.RequestSummary)
		if item.ResponseSummary != "" {
			fmt.Fprintf(w, "   → %s\n", item.ResponseSummary)
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%d entries\n", history.Total)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
