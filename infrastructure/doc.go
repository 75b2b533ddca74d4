// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as model calls, browser sessions, caching and persistence.
//
// The infrastructure package is organized by technical concern:
//
// - browser/rod: Headless Chromium sessions driven through go-rod
// - browser/static: Plain HTTP fetch parsed with goquery, no JavaScript
// - cache/memory: In-process cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: File-backed cache for single-host deployments
// - http/standard: Standard library HTTP client with retry logic
// - llm/openai: Chat completions through the OpenAI SDK
// - logger/logrus: Structured logger with optional file rotation
// - storage/jsonfile: History persisted as one JSON array on disk
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	    DB:      0,
//	})
//
// # Browser Engines
//
//	launcher := rod.NewLauncher("")
//	session, err := launcher.Launch(ctx, interfaces.BrowserOptions{
//	    ViewportWidth:  1920,
//	    ViewportHeight: 1080,
//	    Headless:       true,
//	})
//	defer session.Quit()
//
// # Logger
//
//	logger := logrus.New(logrus.Config{Level: "info"})
//	logger.Info("Processing request", map[string]interface{}{
//	    "url":    "https://example.com",
//	    "action": "parse_site",
//	})
package infrastructure
