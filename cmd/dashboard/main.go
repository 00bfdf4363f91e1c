package main

import (
    "context"
    "errors"
    "flag"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "go.uber.org/zap"

    "stocktracker/internal/app"
    "stocktracker/internal/config"
)

func main() {
    var configPath, dir, port string
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
    flag.StringVar(&dir, "dir", "", "directory to serve (defaults to output.web_dir)")
    flag.StringVar(&port, "port", "", "listen port (defaults to server.port)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if dir == "" { dir = cfg.Output.WebDir }
    if port == "" { port = cfg.Server.Port }

    logger, err := app.NewLogger(cfg.Log.Level, false)
    if err != nil { log.Fatalf("logger: %v", err) }
    defer func() { _ = logger.Sync() }()

    if _, err := os.Stat(dir); err != nil {
        logger.Warn("Dashboard directory missing; run the tracker first", zap.String("dir", dir), zap.Error(err))
    }

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           newHandler(dir, logger),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        logger.Info("Dashboard listening", zap.String("addr", srv.Addr), zap.String("dir", dir))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Fatal("Server failed", zap.Error(err))
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Warn("Shutdown incomplete", zap.Error(err))
    }
    logger.Info("Dashboard stopped")
}

// newHandler serves dir read-only plus a health probe.
func newHandler(dir string, logger *zap.Logger) http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.Handle("/", readOnly(noStoreData(http.FileServer(http.Dir(dir)))))
    return withCORS(withGzip(recoverPanic(logger, mux)))
}
