// Package app wires configuration into the components shared by the binaries.
package app

import (
    "fmt"
    "net/http"
    "time"

    "go.uber.org/multierr"
    "go.uber.org/zap"

    "stocktracker/internal/config"
    "stocktracker/internal/export"
    "stocktracker/internal/httpx"
    "stocktracker/internal/provider"
    "stocktracker/internal/provider/alphavantage"
    "stocktracker/internal/provider/cache"
    "stocktracker/internal/provider/ratelimit"
    "stocktracker/internal/stock"
    "stocktracker/internal/web"
)

// NewLogger builds a production zap logger at level. Console encoding is
// used for interactive sessions.
func NewLogger(level string, console bool) (*zap.Logger, error) {
    cfg := zap.NewProductionConfig()
    if level != "" {
        lvl, err := zap.ParseAtomicLevel(level)
        if err != nil {
            return nil, fmt.Errorf("log level %q: %w", level, err)
        }
        cfg.Level = lvl
    }
    if console {
        cfg.Encoding = "console"
        cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
    }
    return cfg.Build()
}

// BuildClient creates the Alpha Vantage client and wraps it with the pacing
// and caching layers enabled in cfg. A token bucket takes precedence over a
// minimum interval.
func BuildClient(cfg config.Provider, hc *httpx.Client, logger *zap.Logger) (provider.Client, error) {
    if logger == nil { logger = zap.NewNop() }
    if cfg.APIKey == "" || cfg.APIKey == "demo" {
        logger.Warn("ALPHAVANTAGE_API_KEY not set; the demo key only serves a few symbols")
    }

    av, err := alphavantage.NewAlphaVantageAPIClient(
        cfg.APIKey,
        alphavantage.WithBaseURL(cfg.BaseURL),
        alphavantage.WithHTTPClient(hc),
        alphavantage.WithHeader(http.Header{"Accept": []string{"application/json"}}),
    )
    if err != nil {
        return nil, fmt.Errorf("alphavantage client: %w", err)
    }

    var c provider.Client = av
    if cfg.MaxRequestsPerMinute > 0 {
        burst := cfg.Burst
        if burst <= 0 { burst = 1 }
        c = &ratelimit.TokenBucketClient{C: c, TB: ratelimit.PerMinute(cfg.MaxRequestsPerMinute, burst)}
        logger.Info("Request pacing enabled", zap.Int("rpm", cfg.MaxRequestsPerMinute), zap.Int("burst", burst))
    } else if cfg.MinRequestIntervalSec > 0 {
        interval := time.Duration(cfg.MinRequestIntervalSec) * time.Second
        c = &ratelimit.MinInterval{C: c, Interval: interval}
        logger.Info("Request pacing enabled", zap.Duration("min_interval", interval))
    }
    if cfg.CacheTTLSeconds > 0 {
        ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
        c = &cache.Client{C: c, TTL: ttl, MaxItems: cfg.CacheMaxItems}
        logger.Info("Quote cache enabled", zap.Duration("ttl", ttl), zap.Int("max_items", cfg.CacheMaxItems))
    }
    return c, nil
}

// Publish writes every file sink and the web dashboard. Each sink runs even
// when an earlier one fails.
func Publish(out config.Output, records []stock.Record, now time.Time) error {
    return multierr.Combine(
        export.WriteAll(out.Dir, out.WebDir, records, now),
        web.Generate(out.WebDir, records, now),
    )
}
