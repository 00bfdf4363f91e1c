package main

import (
    "bytes"
    "context"
    "io"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "stocktracker/internal/activity"
    "stocktracker/internal/config"
    "stocktracker/internal/export"
    "stocktracker/internal/normalize"
    "stocktracker/internal/provider"
    "stocktracker/internal/stock"
    "stocktracker/internal/terminal"
    "stocktracker/internal/tracker"
    "stocktracker/internal/web"
)

type failingClient struct{}

func (failingClient) Name() string { return "failing" }

func (failingClient) Quote(_ context.Context, symbol string) ([]byte, error) {
    return nil, &provider.HTTPError{Symbol: symbol, StatusCode: 503}
}

var fixedNow = time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

func newSession(t *testing.T, client provider.Client, out *bytes.Buffer) (*session, config.Output) {
    t.Helper()
    dir := t.TempDir()
    cfg := config.Output{Dir: dir, WebDir: filepath.Join(dir, "web"), ActivityLog: filepath.Join(dir, "trading_activity.log")}
    tr, err := tracker.New([]string{"AAPL", "MSFT", "NVDA"}, client, normalize.New(nil), zap.NewNop(),
        tracker.WithRecorder(activity.New(cfg.ActivityLog)))
    require.NoError(t, err)
    return &session{
        tr:     tr,
        screen: terminal.New(out),
        out:    cfg,
        logger: zap.NewNop(),
        now:    func() time.Time { return fixedNow },
    }, cfg
}

func TestSession_MenuFlow(t *testing.T) {
    // Arrange: offline tracker, analysis before refresh, a bad choice, then exit
    var buf bytes.Buffer
    s, cfg := newSession(t, nil, &buf)

    // Act
    s.loop(t.Context(), strings.NewReader("2\n1\n2\n9\n5\n"))

    // Assert: menu responses in order
    out := buf.String()
    first := strings.Index(out, "Please fetch stock data first")
    loaded := strings.Index(out, "Successfully loaded 3 stocks!")
    analysis := strings.Index(out, "DETAILED MARKET ANALYSIS")
    invalid := strings.Index(out, "Invalid choice")
    bye := strings.Index(out, "Thank you for using Smart Stock Tracker!")
    require.True(t, first >= 0 && first < loaded && loaded < analysis && analysis < invalid && invalid < bye, out)
    require.Contains(t, out, "Bullish Stocks:")

    // Assert: every output written
    for _, p := range []string{
        filepath.Join(cfg.Dir, export.StocksFile),
        filepath.Join(cfg.Dir, export.BestFile),
        filepath.Join(cfg.Dir, export.TrendingFile),
        filepath.Join(cfg.Dir, export.TextFile),
        filepath.Join(cfg.WebDir, export.DataFile),
        filepath.Join(cfg.WebDir, web.IndexFile),
    } {
        require.FileExists(t, p)
    }
    b, err := os.ReadFile(cfg.ActivityLog)
    require.NoError(t, err)
    require.Contains(t, string(b), "Updated with demo data - AAPL: $")
}

func TestSession_RefreshFailure(t *testing.T) {
    var buf bytes.Buffer
    s, cfg := newSession(t, failingClient{}, &buf)

    ok := s.refresh(t.Context())

    require.False(t, ok)
    require.Contains(t, buf.String(), "Failed to fetch stock data")
    require.False(t, s.tr.Loaded())
    require.NoFileExists(t, filepath.Join(cfg.Dir, export.StocksFile))
    for _, r := range s.tr.Records() {
        require.Equal(t, stock.StatusFetching, r.Status)
    }
}

func TestSession_StopsOnEOF(t *testing.T) {
    var buf bytes.Buffer
    s, _ := newSession(t, nil, &buf)

    s.loop(t.Context(), strings.NewReader(""))

    require.Contains(t, buf.String(), "Enter your choice")
    require.NotContains(t, buf.String(), "Successfully loaded")
}

func TestSession_CanceledWhileWaitingForInput(t *testing.T) {
    // Arrange: stdin that never delivers a line
    var buf bytes.Buffer
    s, _ := newSession(t, nil, &buf)
    pr, pw := io.Pipe()
    defer pw.Close()
    ctx, cancel := context.WithCancel(t.Context())

    done := make(chan struct{})
    go func() {
        s.loop(ctx, pr)
        close(done)
    }()

    // Act
    cancel()

    // Assert: the loop returns without any input
    select {
    case <-done:
    case <-time.After(2 * time.Second):
        t.Fatal("loop did not return after cancel")
    }
    require.Contains(t, buf.String(), "Interrupted.")
}
