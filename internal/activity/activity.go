// Package activity appends human-readable lines to the trading activity log.
package activity

import (
    "fmt"
    "os"
    "path/filepath"
    "time"

    "stocktracker/internal/stock"
)

// TimeLayout is the timestamp format used in log lines.
const TimeLayout = "2006-01-02 15:04:05"

// Log is an append-only activity log file. The file is opened and closed on
// every write.
type Log struct {
    path string
    now  func() time.Time
}

func New(path string) *Log {
    return &Log{path: path, now: time.Now}
}

// Path returns the log file location.
func (l *Log) Path() string { return l.path }

// Record appends "[timestamp] message", followed by the record's symbol, price
// and change when rec is not nil.
func (l *Log) Record(message string, rec *stock.Record) error {
    if message == "" {
        return fmt.Errorf("activity: empty message")
    }
    if dir := filepath.Dir(l.path); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("activity: %w", err)
        }
    }
    f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("activity: %w", err)
    }
    line := Format(l.now(), message, rec)
    if _, err := f.WriteString(line + "\n"); err != nil {
        f.Close()
        return fmt.Errorf("activity: %w", err)
    }
    return f.Close()
}

// Format renders one log line without the trailing newline.
func Format(ts time.Time, message string, rec *stock.Record) string {
    line := fmt.Sprintf("[%s] %s", ts.Format(TimeLayout), message)
    if rec != nil {
        line += fmt.Sprintf(" - %s: $%.2f (%.2f%%)", rec.Symbol, rec.CurrentPrice, rec.ChangePercent)
    }
    return line
}
