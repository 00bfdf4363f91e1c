// Package export writes the flat-file snapshots consumed by other tools and
// by the web dashboard.
package export

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "github.com/shopspring/decimal"
    "github.com/tidwall/pretty"
    "go.uber.org/multierr"

    "stocktracker/internal/metrics"
    "stocktracker/internal/stock"
)

// File names written by WriteAll.
const (
    StocksFile   = "stocks.json"
    BestFile     = "stock_of_the_day.json"
    TrendingFile = "trending_now.json"
    DataFile     = "data.json"
    TextFile     = "stock_data.txt"
)

// TrendingLimit is the number of gainers in trending_now.json.
const TrendingLimit = 5

// TimeLayout formats lastUpdate and text headers.
const TimeLayout = "2006-01-02 15:04:05"

// ErrNoValidRecords is returned by writers that need at least one valid record.
var ErrNoValidRecords = errors.New("no valid records")

// StockDoc is one entry of stocks.json.
type StockDoc struct {
    Symbol string  `json:"symbol"`
    Name   string  `json:"name"`
    Price  float64 `json:"price"`
    Change float64 `json:"change"`
    Volume float64 `json:"volume"`
    Status string  `json:"status"`
}

// BestDoc is the content of stock_of_the_day.json and the dashboard's bestStock.
type BestDoc struct {
    Symbol string  `json:"symbol"`
    Name   string  `json:"name"`
    Price  float64 `json:"price"`
    Change float64 `json:"change"`
    Status string  `json:"status"`
}

// TrendingDoc is one entry of trending_now.json.
type TrendingDoc struct {
    Symbol string  `json:"symbol"`
    Change float64 `json:"change"`
    Price  float64 `json:"price"`
}

// DashboardStock is one entry of data.json's stocks array.
type DashboardStock struct {
    StockDoc
    DayHigh float64 `json:"dayHigh"`
    DayLow  float64 `json:"dayLow"`
}

// MarketSummary is data.json's marketSummary object.
type MarketSummary struct {
    BullishStocks int     `json:"bullishStocks"`
    BearishStocks int     `json:"bearishStocks"`
    AverageChange float64 `json:"averageChange"`
    Sentiment     string  `json:"sentiment"`
}

// Dashboard is the content of the web directory's data.json.
type Dashboard struct {
    LastUpdate    string           `json:"lastUpdate"`
    TotalStocks   int              `json:"totalStocks"`
    BestStock     *BestDoc         `json:"bestStock,omitempty"`
    MarketSummary MarketSummary    `json:"marketSummary"`
    Stocks        []DashboardStock `json:"stocks"`
}

func round(v float64, places int32) float64 {
    return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Stocks builds the stocks.json document: valid records in input order.
func Stocks(records []stock.Record) []StockDoc {
    valid := metrics.Valid(records)
    out := make([]StockDoc, 0, len(valid))
    for _, r := range valid {
        out = append(out, stockDoc(r))
    }
    return out
}

func stockDoc(r stock.Record) StockDoc {
    return StockDoc{
        Symbol: r.Symbol,
        Name:   r.Name,
        Price:  round(r.CurrentPrice, 2),
        Change: round(r.ChangePercent, 2),
        Volume: round(r.Volume, 0),
        Status: r.Status,
    }
}

// Best builds the stock_of_the_day.json document.
func Best(records []stock.Record) (BestDoc, bool) {
    b, ok := metrics.BestPerforming(records)
    if !ok {
        return BestDoc{}, false
    }
    return BestDoc{
        Symbol: b.Symbol,
        Name:   b.Name,
        Price:  round(b.CurrentPrice, 2),
        Change: round(b.ChangePercent, 2),
        Status: b.Status,
    }, true
}

// Trending builds the trending_now.json document.
func Trending(records []stock.Record) []TrendingDoc {
    top := metrics.Trending(records, TrendingLimit)
    out := make([]TrendingDoc, 0, len(top))
    for _, r := range top {
        out = append(out, TrendingDoc{Symbol: r.Symbol, Change: round(r.ChangePercent, 2), Price: round(r.CurrentPrice, 2)})
    }
    return out
}

// BuildDashboard builds the data.json document.
func BuildDashboard(records []stock.Record, now time.Time) Dashboard {
    s := metrics.Summarize(records)
    d := Dashboard{
        LastUpdate:  now.Format(TimeLayout),
        TotalStocks: s.Valid,
        MarketSummary: MarketSummary{
            BullishStocks: s.Bullish,
            BearishStocks: s.Bearish,
            AverageChange: round(s.AverageChange, 2),
            Sentiment:     s.Sentiment,
        },
        Stocks: []DashboardStock{},
    }
    if b, ok := Best(records); ok {
        d.BestStock = &b
    }
    for _, r := range metrics.Valid(records) {
        d.Stocks = append(d.Stocks, DashboardStock{
            StockDoc: stockDoc(r),
            DayHigh:  round(r.DayHigh, 2),
            DayLow:   round(r.DayLow, 2),
        })
    }
    return d
}

// WriteStocks writes stocks.json into dir.
func WriteStocks(dir string, records []stock.Record) error {
    return writeJSON(filepath.Join(dir, StocksFile), Stocks(records))
}

// WriteBest writes stock_of_the_day.json into dir. It returns
// ErrNoValidRecords and writes nothing when no record is valid.
func WriteBest(dir string, records []stock.Record) error {
    b, ok := Best(records)
    if !ok {
        return fmt.Errorf("writing %s: %w", BestFile, ErrNoValidRecords)
    }
    return writeJSON(filepath.Join(dir, BestFile), b)
}

// WriteTrending writes trending_now.json into dir.
func WriteTrending(dir string, records []stock.Record) error {
    return writeJSON(filepath.Join(dir, TrendingFile), Trending(records))
}

// WriteDashboardData writes data.json into webDir.
func WriteDashboardData(webDir string, records []stock.Record, now time.Time) error {
    return writeJSON(filepath.Join(webDir, DataFile), BuildDashboard(records, now))
}

// WriteText writes the plain-text table into dir.
func WriteText(dir string, records []stock.Record, now time.Time) error {
    path := filepath.Join(dir, TextFile)
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("creating %s: %w", dir, err)
    }
    if err := os.WriteFile(path, []byte(Text(records, now)), 0o644); err != nil {
        return fmt.Errorf("writing %s: %w", path, err)
    }
    return nil
}

// WriteAll runs every writer. A failing writer does not stop the others; the
// returned error combines all failures.
func WriteAll(dir, webDir string, records []stock.Record, now time.Time) error {
    return multierr.Combine(
        WriteStocks(dir, records),
        WriteBest(dir, records),
        WriteTrending(dir, records),
        WriteText(dir, records, now),
        WriteDashboardData(webDir, records, now),
    )
}

func writeJSON(path string, v any) error {
    data, err := json.Marshal(v)
    if err != nil {
        return fmt.Errorf("marshalling %s: %w", filepath.Base(path), err)
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
    }
    if err := os.WriteFile(path, pretty.Pretty(data), 0o644); err != nil {
        return fmt.Errorf("writing %s: %w", path, err)
    }
    return nil
}
