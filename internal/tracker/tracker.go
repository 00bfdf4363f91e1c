// Package tracker runs refresh cycles over a fixed watchlist.
//
// A cycle fetches one symbol at a time, normalizes each payload and replaces
// that symbol's record wholesale. A failed fetch leaves the record untouched
// and the cycle moves on to the next symbol.
package tracker

import (
    "context"
    "errors"
    "fmt"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "stocktracker/internal/normalize"
    "stocktracker/internal/provider"
    "stocktracker/internal/stock"
)

// ErrNoUpdates is returned when a cycle updated no symbol at all.
var ErrNoUpdates = errors.New("no symbols updated")

// ErrNoSymbols is returned by New when no configured symbol is valid.
var ErrNoSymbols = errors.New("no valid symbols configured")

// Recorder receives human-readable activity lines.
type Recorder interface {
    Record(message string, rec *stock.Record) error
}

// Failure describes one symbol that could not be refreshed.
type Failure struct {
    Symbol string
    Err    error
}

// Result summarizes one refresh cycle.
type Result struct {
    RunID     string
    Attempted int
    Updated   int
    Demo      int
    Failures  []Failure
}

// Tracker owns the record set for one session.
type Tracker struct {
    client   provider.Client
    norm     *normalize.Normalizer
    logger   *zap.Logger
    recorder Recorder

    records []stock.Record
    loaded  bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithRecorder sends activity lines to r.
func WithRecorder(r Recorder) Option {
    return func(t *Tracker) { t.recorder = r }
}

// New validates symbols and creates a placeholder record for each one.
// Invalid symbols are logged and skipped. A nil client puts the tracker in
// offline mode, where every record is synthesized.
func New(symbols []string, client provider.Client, norm *normalize.Normalizer, logger *zap.Logger, opts ...Option) (*Tracker, error) {
    if logger == nil { logger = zap.NewNop() }
    if norm == nil { norm = normalize.New(nil) }

    valid, rejected := stock.ValidateSymbols(symbols)
    for _, s := range rejected {
        logger.Warn("Skipping invalid symbol", zap.String("symbol", s), zap.Error(stock.ErrInvalidSymbol))
    }
    if len(valid) == 0 {
        return nil, ErrNoSymbols
    }

    t := &Tracker{client: client, norm: norm, logger: logger}
    for _, opt := range opts {
        opt(t)
    }
    t.records = make([]stock.Record, len(valid))
    for i, s := range valid {
        t.records[i] = stock.Placeholder(s)
    }
    return t, nil
}

// Records returns a copy of the current record set in watchlist order.
func (t *Tracker) Records() []stock.Record {
    out := make([]stock.Record, len(t.records))
    copy(out, t.records)
    return out
}

// Symbols returns the tracked symbols in order.
func (t *Tracker) Symbols() []string {
    out := make([]string, len(t.records))
    for i, r := range t.records {
        out[i] = r.Symbol
    }
    return out
}

// Loaded reports whether any cycle has succeeded.
func (t *Tracker) Loaded() bool { return t.loaded }

// Offline reports whether the tracker synthesizes data instead of fetching.
func (t *Tracker) Offline() bool { return t.client == nil }

// Refresh runs one cycle over every tracked symbol. It returns ErrNoUpdates
// when nothing was updated; the record set is then unchanged.
func (t *Tracker) Refresh(ctx context.Context) (Result, error) {
    res := Result{RunID: uuid.NewString(), Attempted: len(t.records)}
    log := t.logger.With(zap.String("run_id", res.RunID))
    log.Info("Refresh started", zap.Int("symbols", res.Attempted), zap.Bool("offline", t.Offline()))
    t.record(fmt.Sprintf("Refresh %s started for %d symbols", shortID(res.RunID), res.Attempted), nil)

    for i := range t.records {
        sym := t.records[i].Symbol

        body, err := t.fetch(ctx, sym)
        if err != nil {
            log.Warn("Quote fetch failed", zap.String("symbol", sym), zap.Error(err))
            res.Failures = append(res.Failures, Failure{Symbol: sym, Err: err})
            continue
        }

        rec := t.norm.Normalize(sym, body)
        t.records[i] = rec
        res.Updated++
        if rec.Demo {
            res.Demo++
            log.Info("Using demo data", zap.String("symbol", sym))
        } else {
            log.Debug("Quote updated", zap.String("symbol", sym), zap.Float64("price", rec.CurrentPrice), zap.Float64("change_percent", rec.ChangePercent))
        }
        msg := "Updated"
        if rec.Demo { msg = "Updated with demo data" }
        t.record(msg, &rec)
    }

    if res.Updated == 0 {
        log.Error("Refresh failed", zap.Int("failures", len(res.Failures)))
        t.record(fmt.Sprintf("Refresh %s failed: 0/%d symbols updated", shortID(res.RunID), res.Attempted), nil)
        return res, ErrNoUpdates
    }
    t.loaded = true
    log.Info("Refresh finished", zap.Int("updated", res.Updated), zap.Int("demo", res.Demo), zap.Int("failures", len(res.Failures)))
    t.record(fmt.Sprintf("Refresh %s finished: %d/%d symbols updated", shortID(res.RunID), res.Updated, res.Attempted), nil)
    return res, nil
}

func (t *Tracker) fetch(ctx context.Context, symbol string) ([]byte, error) {
    if t.client == nil {
        return nil, nil
    }
    return t.client.Quote(ctx, symbol)
}

func (t *Tracker) record(message string, rec *stock.Record) {
    if t.recorder == nil { return }
    if err := t.recorder.Record(message, rec); err != nil {
        t.logger.Warn("Activity log write failed", zap.Error(err))
    }
}

func shortID(id string) string {
    if len(id) > 8 { return id[:8] }
    return id
}
