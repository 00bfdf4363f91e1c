package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"

    "github.com/joho/godotenv"

    "stocktracker/internal/stock"
)

type Provider struct {
    BaseURL               string `json:"base_url"`
    APIKey                string `json:"api_key"`
    RequestTimeoutSec     int    `json:"request_timeout_sec"`
    MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
    Burst                 int    `json:"burst"`
    MinRequestIntervalSec int    `json:"min_request_interval_sec"`
    CacheTTLSeconds       int    `json:"cache_ttl_sec"`
    CacheMaxItems         int    `json:"cache_max_items"`
}

type Tracker struct {
    Symbols []string `json:"symbols"`
    // Offline skips the network and fills every record with demo data.
    Offline bool `json:"offline"`
}

type Output struct {
    Dir         string `json:"dir"`
    WebDir      string `json:"web_dir"`
    ActivityLog string `json:"activity_log"`
}

type Server struct {
    Port string `json:"port"`
}

type Log struct {
    Level string `json:"level"`
}

type Config struct {
    Provider Provider `json:"provider"`
    Tracker  Tracker  `json:"tracker"`
    Output   Output   `json:"output"`
    Server   Server   `json:"server"`
    Log      Log      `json:"log"`
}

func Default() Config {
    return Config{
        Provider: Provider{
            BaseURL:           "https://www.alphavantage.co/query",
            APIKey:            "demo",
            RequestTimeoutSec: 30,
            Burst:             1,
            CacheMaxItems:     100,
        },
        Tracker: Tracker{Symbols: append([]string(nil), stock.DefaultWatchlist...)},
        Output:  Output{Dir: ".", WebDir: "web", ActivityLog: "trading_activity.log"},
        Server:  Server{Port: "8080"},
        Log:     Log{Level: "info"},
    }
}

// Load reads JSON config from path. If path is empty it falls back to
// ./config.json when present, otherwise defaults. A .env file in the working
// directory is loaded into the environment first; environment variables then
// override select fields.
func Load(path string) (Config, error) {
    cfg := Default()
    if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
        return cfg, fmt.Errorf("load .env: %w", err)
    }
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" { cfg.Provider.APIKey = v }
    if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" { cfg.Provider.BaseURL = v }
    if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 { cfg.Provider.RequestTimeoutSec = x }
    if x, ok := envInt("MAX_RPM"); ok && x >= 0 { cfg.Provider.MaxRequestsPerMinute = x }
    if x, ok := envInt("BURST"); ok && x > 0 { cfg.Provider.Burst = x }
    if x, ok := envInt("MIN_INTERVAL_SEC"); ok && x >= 0 { cfg.Provider.MinRequestIntervalSec = x }
    if x, ok := envInt("CACHE_TTL_SEC"); ok && x >= 0 { cfg.Provider.CacheTTLSeconds = x }
    if x, ok := envInt("CACHE_MAX_ITEMS"); ok && x > 0 { cfg.Provider.CacheMaxItems = x }

    if v := os.Getenv("SYMBOLS"); v != "" { cfg.Tracker.Symbols = SplitCSV(v) }
    if b, ok := envBool("OFFLINE"); ok { cfg.Tracker.Offline = b }

    if v := os.Getenv("OUTPUT_DIR"); v != "" { cfg.Output.Dir = v }
    if v := os.Getenv("WEB_DIR"); v != "" { cfg.Output.WebDir = v }
    if v := os.Getenv("ACTIVITY_LOG"); v != "" { cfg.Output.ActivityLog = v }

    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
}

func envInt(key string) (int, bool) {
    v := os.Getenv(key)
    if v == "" { return 0, false }
    var x int
    if _, err := fmt.Sscanf(v, "%d", &x); err != nil { return 0, false }
    return x, true
}

func envBool(key string) (bool, bool) {
    return ParseBool(os.Getenv(key))
}

// ParseBool accepts the usual spellings of yes and no.
func ParseBool(v string) (value bool, ok bool) {
    switch strings.ToLower(strings.TrimSpace(v)) {
    case "1", "true", "yes", "y":
        return true, true
    case "0", "false", "no", "n":
        return false, true
    }
    return false, false
}

// SplitCSV splits a comma-separated list, dropping blanks.
func SplitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}
