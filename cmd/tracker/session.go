package main

import (
    "bufio"
    "context"
    "errors"
    "io"
    "strings"
    "time"

    "go.uber.org/multierr"
    "go.uber.org/zap"

    "stocktracker/internal/app"
    "stocktracker/internal/config"
    "stocktracker/internal/export"
    "stocktracker/internal/metrics"
    "stocktracker/internal/terminal"
    "stocktracker/internal/tracker"
)

// Menu choices.
const (
    choiceRefresh  = "1"
    choiceAnalysis = "2"
    choiceExit     = "5"
)

// session drives the interactive menu over one tracker.
type session struct {
    tr     *tracker.Tracker
    screen *terminal.Screen
    out    config.Output
    logger *zap.Logger
    now    func() time.Time
}

// loop reads menu choices from in until exit, EOF or ctx is done. Input is
// read on its own goroutine so a canceled ctx ends the loop while the prompt
// is waiting.
func (s *session) loop(ctx context.Context, in io.Reader) {
    s.screen.Header(s.now(), s.tr.Offline())
    s.screen.Info("Initializing Smart Stock Tracker with %d symbols...", len(s.tr.Symbols()))
    lines := readLines(ctx, in)
    for {
        s.screen.Menu()
        var line string
        select {
        case <-ctx.Done():
            s.screen.Info("")
            s.screen.Info("Interrupted.")
            return
        case l, ok := <-lines:
            if !ok {
                s.screen.Info("")
                return
            }
            line = l
        }
        switch strings.TrimSpace(line) {
        case choiceRefresh:
            s.refresh(ctx)
        case choiceAnalysis:
            s.analysis()
        case choiceExit:
            s.screen.Info("Thank you for using Smart Stock Tracker!")
            s.screen.Info("Stay informed, invest wisely!")
            return
        default:
            s.screen.Failure("Invalid choice. Please select 1, 2 or 5.")
        }
    }
}

// readLines sends each line of in until EOF, then closes the channel. A
// goroutine blocked on a read of os.Stdin ends with the process.
func readLines(ctx context.Context, in io.Reader) <-chan string {
    out := make(chan string)
    go func() {
        defer close(out)
        sc := bufio.NewScanner(in)
        for sc.Scan() {
            select {
            case out <- sc.Text():
            case <-ctx.Done():
                return
            }
        }
    }()
    return out
}

// refresh runs one cycle, renders the results and writes every output.
// It reports whether at least one symbol was updated.
func (s *session) refresh(ctx context.Context) bool {
    s.screen.Info("Fetching stock data for %d symbols...", len(s.tr.Symbols()))
    res, err := s.tr.Refresh(ctx)
    if errors.Is(err, tracker.ErrNoUpdates) {
        s.screen.Failure("Failed to fetch stock data. Please check your internet connection.")
        return false
    }
    if err != nil {
        s.screen.Failure("Refresh failed: %v", err)
        return false
    }

    now := s.now()
    records := s.tr.Records()
    s.screen.Header(now, s.tr.Offline())
    if best, ok := metrics.BestPerforming(records); ok {
        s.screen.Best(best)
    }
    s.screen.Table(records)
    s.screen.Trending(records, export.TrendingLimit)

    for _, f := range res.Failures {
        s.screen.Failure("%s: %v", f.Symbol, f.Err)
    }
    if res.Demo > 0 {
        s.screen.Info("%d of %d symbols use demo data.", res.Demo, res.Updated)
    }

    if err := app.Publish(s.out, records, now); err != nil {
        for _, e := range multierr.Errors(err) {
            s.logger.Error("Writing output failed", zap.Error(e))
            s.screen.Failure("Output error: %v", e)
        }
    }
    s.screen.Success("Successfully loaded %d stocks!", res.Updated)
    return true
}

func (s *session) analysis() {
    if !s.tr.Loaded() {
        s.screen.Failure("Please fetch stock data first (Option 1).")
        return
    }
    s.screen.Header(s.now(), s.tr.Offline())
    s.screen.Analysis(metrics.Summarize(s.tr.Records()))
}
