package stock

import "time"

// SharesOutstanding is the fixed share count used to derive MarketCap.
// It is a simplification, not a real market capitalisation.
const SharesOutstanding = 1_000_000_000

// Status labels.
const (
    StatusFetching      = "FETCHING"
    StatusStrongBullish = "STRONG BULLISH"
    StatusBullish       = "BULLISH"
    StatusNeutral       = "NEUTRAL"
    StatusBearish       = "BEARISH"
    StatusStrongBearish = "STRONG BEARISH"
)

// strongMove is the absolute percent change at which a move is labelled strong.
const strongMove = 2.0

// Record is the normalized quote for one tracked symbol.
type Record struct {
    Symbol        string    `json:"symbol"`
    Name          string    `json:"name"`
    CurrentPrice  float64   `json:"current_price"`
    PreviousClose float64   `json:"previous_close"`
    DayHigh       float64   `json:"day_high"`
    DayLow        float64   `json:"day_low"`
    ChangePercent float64   `json:"change_percent"`
    Volume        float64   `json:"volume"`
    MarketCap     float64   `json:"market_cap"`
    Status        string    `json:"status"`
    Demo          bool      `json:"demo"`
    LastUpdate    time.Time `json:"last_update"`
}

// Placeholder returns the not-yet-fetched record for symbol.
func Placeholder(symbol string) Record {
    return Record{Symbol: symbol, Name: "Loading...", Status: StatusFetching}
}

// Valid reports whether the record carries a usable price.
func (r Record) Valid() bool { return r.CurrentPrice > 0 }

// ClassifyChange maps a percent change onto a status band.
func ClassifyChange(pct float64) string {
    switch {
    case pct >= strongMove:
        return StatusStrongBullish
    case pct > 0:
        return StatusBullish
    case pct <= -strongMove:
        return StatusStrongBearish
    case pct < 0:
        return StatusBearish
    default:
        return StatusNeutral
    }
}
