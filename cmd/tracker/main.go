package main

import (
    "context"
    "flag"
    "log"
    "os"
    "os/signal"
    "path/filepath"
    "syscall"
    "time"

    "go.uber.org/zap"

    "stocktracker/internal/activity"
    "stocktracker/internal/app"
    "stocktracker/internal/config"
    "stocktracker/internal/httpx"
    "stocktracker/internal/normalize"
    "stocktracker/internal/provider"
    "stocktracker/internal/terminal"
    "stocktracker/internal/tracker"
)

func main() {
    var configPath, symbolsCSV string
    var offline, once bool
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
    flag.StringVar(&symbolsCSV, "symbols", "", "comma-separated ticker symbols (defaults to tracker.symbols)")
    flag.BoolVar(&offline, "offline", false, "synthesize demo data instead of calling the API")
    flag.BoolVar(&once, "once", false, "run a single refresh, write all outputs and exit")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if symbolsCSV != "" { cfg.Tracker.Symbols = config.SplitCSV(symbolsCSV) }
    if offline { cfg.Tracker.Offline = true }

    logger, err := app.NewLogger(cfg.Log.Level, true)
    if err != nil { log.Fatalf("logger: %v", err) }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    code := run(ctx, cfg, logger, once)
    stop()
    _ = logger.Sync()
    os.Exit(code)
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, once bool) int {
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

    logPath := cfg.Output.ActivityLog
    if logPath != "" && !filepath.IsAbs(logPath) {
        logPath = filepath.Join(cfg.Output.Dir, logPath)
    }
    var opts []tracker.Option
    if logPath != "" {
        opts = append(opts, tracker.WithRecorder(activity.New(logPath)))
    }

    tr, err := tracker.New(cfg.Tracker.Symbols, client, normalize.New(nil), logger, opts...)
    if err != nil {
        logger.Error("No symbols to track", zap.Error(err))
        return 1
    }

    s := &session{
        tr:     tr,
        screen: terminal.New(os.Stdout),
        out:    cfg.Output,
        logger: logger,
        now:    time.Now,
    }
    if once {
        if !s.refresh(ctx) {
            return 1
        }
        return 0
    }
    s.loop(ctx, os.Stdin)
    return 0
}
