// Package core contains the business logic for the Competitor Monitor API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Analysis results, parsed pages and history entries
// - normalizer: Turns free-form model replies into structured results
// - analysis: Prompts and model calls for text, image and site analysis
// - fetcher: Loads a page in a browser session and extracts its key fields
// - workers: Bounded pool of concurrent page fetches
// - history: Bounded newest-first log of past requests
// - pipeline: Validation and orchestration behind the HTTP endpoints
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (model, browser, cache, storage, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "competitor-monitor-api/core/analysis"
//	    "competitor-monitor-api/core/pipeline"
//	)
//
//	analyzer, err := analysis.NewService(completer, logger, analysis.Config{
//	    TextModel:   "gpt-4o-mini",
//	    VisionModel: "gpt-4o-mini",
//	})
//
//	service := pipeline.NewService(pipeline.Dependencies{
//	    Analyzer: analyzer,
//	    Pages:    pool,
//	    History:  historyStore,
//	    Logger:   logger,
//	})
//
//	result, err := service.AnalyzeText(ctx, "Competitor landing page copy")
package core
