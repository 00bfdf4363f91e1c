// Package normalize turns raw quote payloads into stock records.
//
// A 200 response always yields a usable record: when the payload does not have
// the expected shape, a plausible demo record is synthesized instead.
package normalize

import (
    "encoding/json"
    "math"
    "math/rand"
    "strconv"
    "strings"
    "time"

    "github.com/kaptinlin/jsonrepair"

    "stocktracker/internal/provider/alphavantage"
    "stocktracker/internal/stock"
)

// Rand supplies the jitter for demo records.
type Rand interface {
    Intn(n int) int
}

// Layout names the keys of a provider's quote payload.
type Layout struct {
    Container     string
    Price         string
    ChangePercent string
    Volume        string
    PreviousClose string
    High          string
    Low           string
}

// AlphaVantageLayout matches the GLOBAL_QUOTE response.
var AlphaVantageLayout = Layout{
    Container:     alphavantage.GlobalQuoteKey,
    Price:         alphavantage.FieldPrice,
    ChangePercent: alphavantage.FieldChangePercent,
    Volume:        alphavantage.FieldVolume,
    PreviousClose: alphavantage.FieldPreviousClose,
    High:          alphavantage.FieldHigh,
    Low:           alphavantage.FieldLow,
}

const (
    demoBaseVolume   = 1_000_000
    demoVolumeSpread = 5_000_000
    demoRangeSpread  = 5
)

// Normalizer converts payloads into records.
type Normalizer struct {
    rand   Rand
    now    func() time.Time
    layout Layout
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the time source used for LastUpdate.
func WithClock(now func() time.Time) Option {
    return func(n *Normalizer) { n.now = now }
}

// WithLayout overrides the payload keys.
func WithLayout(l Layout) Option {
    return func(n *Normalizer) { n.layout = l }
}

// New returns a Normalizer. A nil rnd selects a time-seeded source.
func New(rnd Rand, opts ...Option) *Normalizer {
    if rnd == nil {
        rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
    }
    n := &Normalizer{rand: rnd, now: time.Now, layout: AlphaVantageLayout}
    for _, opt := range opts {
        opt(n)
    }
    return n
}

// Normalize builds the record for symbol from body. A nil body (offline mode),
// any payload without a usable quote object, or a quote whose price is not a
// positive number yields a demo record.
func (n *Normalizer) Normalize(symbol string, body []byte) stock.Record {
    quote, ok := n.extract(body)
    if !ok {
        return n.Synthesize(symbol)
    }

    rec := stock.Record{
        Symbol:        symbol,
        CurrentPrice:  parseNumber(quote[n.layout.Price]),
        ChangePercent: parseNumber(quote[n.layout.ChangePercent]),
        Volume:        parseNumber(quote[n.layout.Volume]),
        PreviousClose: parseNumber(quote[n.layout.PreviousClose]),
        DayHigh:       parseNumber(quote[n.layout.High]),
        DayLow:        parseNumber(quote[n.layout.Low]),
    }
    if !rec.Valid() {
        return n.Synthesize(symbol)
    }
    return n.finish(rec)
}

// extract returns the quote object when the payload has the expected shape.
func (n *Normalizer) extract(body []byte) (map[string]any, bool) {
    if len(body) == 0 {
        return nil, false
    }
    var root map[string]any
    if err := json.Unmarshal(body, &root); err != nil {
        repaired, rerr := jsonrepair.JSONRepair(string(body))
        if rerr != nil {
            return nil, false
        }
        if err := json.Unmarshal([]byte(repaired), &root); err != nil {
            return nil, false
        }
    }
    quote, ok := root[n.layout.Container].(map[string]any)
    if !ok {
        return nil, false
    }
    if _, ok := quote[n.layout.Price]; !ok {
        return nil, false
    }
    return quote, true
}

// Synthesize fabricates a plausible record for symbol.
func (n *Normalizer) Synthesize(symbol string) stock.Record {
    p := stock.Lookup(symbol)

    price := p.BasePrice + float64(n.jitter(p.PriceSpread))
    if price <= 0 {
        price = p.BasePrice
    }
    change := float64(n.jitter(p.ChangeSpread)) / 100

    rec := stock.Record{
        Symbol:        symbol,
        CurrentPrice:  price,
        ChangePercent: change,
        PreviousClose: PreviousClose(price, change),
        Volume:        float64(demoBaseVolume + n.intn(demoVolumeSpread)),
        DayHigh:       price + float64(n.intn(demoRangeSpread)),
        DayLow:        price - float64(n.intn(demoRangeSpread)),
        Demo:          true,
    }
    return n.finish(rec)
}

func (n *Normalizer) finish(rec stock.Record) stock.Record {
    rec.Name = stock.CompanyName(rec.Symbol)
    rec.MarketCap = rec.CurrentPrice * stock.SharesOutstanding
    rec.Status = stock.ClassifyChange(rec.ChangePercent)
    rec.LastUpdate = n.now()
    return rec
}

// jitter returns a value in [-spread, spread).
func (n *Normalizer) jitter(spread int) int {
    if spread <= 0 {
        return 0
    }
    return n.rand.Intn(2*spread) - spread
}

func (n *Normalizer) intn(bound int) int {
    if bound <= 0 {
        return 0
    }
    return n.rand.Intn(bound)
}

// PreviousClose inverts ChangePercent: the close from which price moved by pct.
func PreviousClose(price, pct float64) float64 {
    factor := 1 + pct/100
    if factor <= 0 {
        return 0
    }
    return price / factor
}

// ChangePercent is (price - prev) / prev * 100, or 0 when prev is not positive.
func ChangePercent(price, prev float64) float64 {
    if prev <= 0 {
        return 0
    }
    return (price - prev) / prev * 100
}

// parseNumber reads a string-typed numeric field, tolerating a trailing '%'.
// Anything unreadable is zero.
func parseNumber(v any) float64 {
    switch x := v.(type) {
    case string:
        s := strings.TrimSuffix(strings.TrimSpace(x), "%")
        f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
        if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
            return 0
        }
        return f
    case float64:
        return x
    default:
        return 0
    }
}
