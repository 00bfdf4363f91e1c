package tracker_test

import (
    "context"
    "errors"
    "fmt"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "stocktracker/internal/metrics"
    "stocktracker/internal/normalize"
    "stocktracker/internal/provider"
    "stocktracker/internal/stock"
    "stocktracker/internal/tracker"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

// fakeClient answers from a fixed table. Symbols with an entry in errs fail.
type fakeClient struct {
    bodies map[string]string
    errs   map[string]error
    calls  []string
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) Quote(_ context.Context, symbol string) ([]byte, error) {
    f.calls = append(f.calls, symbol)
    if err, ok := f.errs[symbol]; ok {
        return nil, err
    }
    return []byte(f.bodies[symbol]), nil
}

type memRecorder struct{ lines []string }

func (m *memRecorder) Record(msg string, rec *stock.Record) error {
    if rec != nil { msg = msg + " " + rec.Symbol }
    m.lines = append(m.lines, msg)
    return nil
}

func quoteBody(price, pct float64) string {
    return fmt.Sprintf(`{"Global Quote":{"05. price":"%.2f","10. change percent":"%.4f%%","06. volume":"1000"}}`, price, pct)
}

func newNorm() *normalize.Normalizer {
    now := time.Date(2025, 10, 12, 17, 30, 0, 0, time.UTC)
    return normalize.New(zeroRand{}, normalize.WithClock(func() time.Time { return now }))
}

func TestNew_SkipsInvalidSymbols(t *testing.T) {
    // Arrange + Act
    tr, err := tracker.New([]string{" aapl ", "", "TOOLONGSYMBOL", "msft", "AAPL"}, nil, newNorm(), zap.NewNop())

    // Assert: only valid, deduplicated symbols remain, as placeholders
    require.NoError(t, err)
    require.Equal(t, []string{"AAPL", "MSFT"}, tr.Symbols())
    for _, r := range tr.Records() {
        require.Equal(t, stock.StatusFetching, r.Status)
        require.Zero(t, r.CurrentPrice)
    }
    require.False(t, tr.Loaded())
    require.True(t, tr.Offline())
}

func TestNew_NoValidSymbols(t *testing.T) {
    _, err := tracker.New([]string{"", "   "}, nil, newNorm(), nil)
    require.ErrorIs(t, err, tracker.ErrNoSymbols)
}

func TestRefresh_OneFailureOutOfFive(t *testing.T) {
    // Arrange: five symbols, the fourth is rate limited
    client := &fakeClient{
        bodies: map[string]string{
            "AAPL": quoteBody(180, 1.5),
            "MSFT": quoteBody(410, -0.5),
            "GOOGL": quoteBody(140, 3.2),
            "AMZN": quoteBody(145, 0),
        },
        errs: map[string]error{
            "TSLA": &provider.HTTPError{Symbol: "TSLA", StatusCode: 429},
        },
    }
    rec := &memRecorder{}
    tr, err := tracker.New([]string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN"}, client, newNorm(), zap.NewNop(), tracker.WithRecorder(rec))
    require.NoError(t, err)

    // Act
    res, err := tr.Refresh(t.Context())

    // Assert: four updated, TSLA untouched
    require.NoError(t, err)
    require.Equal(t, 5, res.Attempted)
    require.Equal(t, 4, res.Updated)
    require.Zero(t, res.Demo)
    require.Len(t, res.Failures, 1)
    require.Equal(t, "TSLA", res.Failures[0].Symbol)
    var he *provider.HTTPError
    require.ErrorAs(t, res.Failures[0].Err, &he)
    require.NotEmpty(t, res.RunID)
    require.True(t, tr.Loaded())
    require.Equal(t, []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN"}, client.calls)

    records := tr.Records()
    require.Equal(t, stock.Placeholder("TSLA"), records[3])
    require.Equal(t, stock.StatusStrongBullish, records[2].Status)

    best, ok := metrics.BestPerforming(records)
    require.True(t, ok)
    require.Equal(t, "GOOGL", best.Symbol)
    require.Len(t, metrics.Valid(records), 4)

    // Assert: started, four updates, finished
    require.Len(t, rec.lines, 6)
    require.Equal(t, "Updated AAPL", rec.lines[1])
}

func TestRefresh_AllFailuresKeepsRecords(t *testing.T) {
    // Arrange
    boom := errors.New("connection refused")
    client := &fakeClient{errs: map[string]error{
        "AAPL": &provider.TransportError{Symbol: "AAPL", Err: boom},
        "MSFT": &provider.TransportError{Symbol: "MSFT", Err: boom},
    }}
    tr, err := tracker.New([]string{"AAPL", "MSFT"}, client, newNorm(), zap.NewNop())
    require.NoError(t, err)
    before := tr.Records()

    // Act
    res, err := tr.Refresh(t.Context())

    // Assert
    require.ErrorIs(t, err, tracker.ErrNoUpdates)
    require.Zero(t, res.Updated)
    require.Len(t, res.Failures, 2)
    require.ErrorIs(t, res.Failures[0].Err, boom)
    require.Equal(t, before, tr.Records())
    require.False(t, tr.Loaded())
}

func TestRefresh_GarbageBodyFallsBackToDemo(t *testing.T) {
    client := &fakeClient{bodies: map[string]string{"NVDA": `{"Note":"Thank you for using Alpha Vantage!"}`}}
    tr, err := tracker.New([]string{"NVDA"}, client, newNorm(), zap.NewNop())
    require.NoError(t, err)

    res, err := tr.Refresh(t.Context())

    require.NoError(t, err)
    require.Equal(t, 1, res.Demo)
    r := tr.Records()[0]
    require.True(t, r.Demo)
    require.Equal(t, "NVIDIA Corporation", r.Name)
    require.Positive(t, r.CurrentPrice)
}

func TestRefresh_OfflineSynthesizesEverything(t *testing.T) {
    tr, err := tracker.New(stock.DefaultWatchlist, nil, newNorm(), zap.NewNop())
    require.NoError(t, err)

    res, err := tr.Refresh(t.Context())

    require.NoError(t, err)
    require.Equal(t, len(stock.DefaultWatchlist), res.Updated)
    require.Equal(t, res.Updated, res.Demo)
    for _, r := range tr.Records() {
        require.True(t, r.Valid(), r.Symbol)
        require.True(t, r.Demo, r.Symbol)
    }
}

func TestRefresh_UnusablePriceNeverWipesValidRecord(t *testing.T) {
    // Arrange: a good first cycle
    client := &fakeClient{bodies: map[string]string{"AAPL": quoteBody(180, 1.5)}}
    tr, err := tracker.New([]string{"AAPL"}, client, newNorm(), zap.NewNop())
    require.NoError(t, err)
    _, err = tr.Refresh(t.Context())
    require.NoError(t, err)
    require.InDelta(t, 180.0, tr.Records()[0].CurrentPrice, 1e-9)

    // Act: the provider answers 200 with a placeholder price
    client.bodies["AAPL"] = `{"Global Quote":{"05. price":"N/A","10. change percent":"N/A"}}`
    res, err := tr.Refresh(t.Context())

    // Assert: the record is demo data, never an invalid one
    require.NoError(t, err)
    require.Equal(t, 1, res.Updated)
    require.Equal(t, 1, res.Demo)
    r := tr.Records()[0]
    require.True(t, r.Valid())
    require.True(t, r.Demo)
    require.Len(t, metrics.Valid(tr.Records()), 1)
}

func TestRecords_ReturnsCopy(t *testing.T) {
    tr, err := tracker.New([]string{"AAPL"}, nil, newNorm(), zap.NewNop())
    require.NoError(t, err)

    got := tr.Records()
    got[0].Symbol = "XXX"

    require.Equal(t, "AAPL", tr.Records()[0].Symbol)
}
