package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "os"
    "time"

    "github.com/tidwall/pretty"
    "go.uber.org/zap"

    "stocktracker/internal/app"
    "stocktracker/internal/config"
    "stocktracker/internal/httpx"
    "stocktracker/internal/normalize"
    "stocktracker/internal/provider"
    "stocktracker/internal/tracker"
)

func main() {
    var symbolsCSV string
    var configPath string
    var offline bool
    var timeout int

    flag.StringVar(&symbolsCSV, "symbols", "", "comma-separated ticker symbols (defaults to tracker.symbols)")
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
    flag.BoolVar(&offline, "offline", false, "synthesize demo data instead of calling the API")
    flag.IntVar(&timeout, "timeout", 0, "request timeout seconds (defaults to provider.request_timeout_sec)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if symbolsCSV != "" { cfg.Tracker.Symbols = config.SplitCSV(symbolsCSV) }
    if offline { cfg.Tracker.Offline = true }
    if timeout > 0 { cfg.Provider.RequestTimeoutSec = timeout }

    logger, err := app.NewLogger(cfg.Log.Level, false)
    if err != nil { log.Fatalf("logger: %v", err) }

    code := run(cfg, logger)
    _ = logger.Sync()
    os.Exit(code)
}

func run(cfg config.Config, logger *zap.Logger) int {
    httpClient := httpx.New(time.Duration(cfg.Provider.RequestTimeoutSec) * time.Second)
    defer httpClient.Close()

    var client provider.Client
    if !cfg.Tracker.Offline {
        c, err := app.BuildClient(cfg.Provider, httpClient, logger)
        if err != nil {
            logger.Error("Building client failed", zap.Error(err))
            return 1
        }
        client = c
    }

    tr, err := tracker.New(cfg.Tracker.Symbols, client, normalize.New(nil), logger)
    if err != nil {
        logger.Error("No symbols to fetch", zap.Error(err))
        return 1
    }

    res, err := tr.Refresh(context.Background())
    for _, f := range res.Failures {
        logger.Warn("Symbol failed", zap.String("symbol", f.Symbol), zap.Error(f.Err))
    }
    if err != nil {
        logger.Error("Fetch failed", zap.Error(err))
        return 1
    }
    logger.Info("Fetched quotes", zap.Int("updated", res.Updated), zap.Int("demo", res.Demo))

    b, err := json.Marshal(struct {
        RunID   string      `json:"run_id"`
        Records any         `json:"records"`
    }{RunID: res.RunID, Records: tr.Records()})
    if err != nil {
        logger.Error("Encoding records failed", zap.Error(err))
        return 1
    }
    fmt.Print(string(pretty.Pretty(b)))
    return 0
}
