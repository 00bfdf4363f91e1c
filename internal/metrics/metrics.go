// Package metrics derives summary figures from a set of stock records.
// Every function ignores records without a positive price.
package metrics

import (
    "math"
    "sort"

    "github.com/shopspring/decimal"

    "stocktracker/internal/stock"
)

// Sentiment labels.
const (
    SentimentBullish = "Bullish"
    SentimentBearish = "Bearish"
    SentimentMixed   = "Mixed"
    SentimentNeutral = "Neutral"
)

// Valid returns the records with a positive price, in input order.
func Valid(records []stock.Record) []stock.Record {
    out := make([]stock.Record, 0, len(records))
    for _, r := range records {
        if r.Valid() { out = append(out, r) }
    }
    return out
}

// BestPerforming returns the valid record with the highest change.
// The first of equal maxima wins. ok is false when no record is valid.
func BestPerforming(records []stock.Record) (best stock.Record, ok bool) {
    for _, r := range records {
        if !r.Valid() { continue }
        if !ok || r.ChangePercent > best.ChangePercent {
            best, ok = r, true
        }
    }
    return best, ok
}

// MostVolatile returns the valid record with the largest absolute change.
func MostVolatile(records []stock.Record) (most stock.Record, ok bool) {
    for _, r := range records {
        if !r.Valid() { continue }
        if !ok || math.Abs(r.ChangePercent) > math.Abs(most.ChangePercent) {
            most, ok = r, true
        }
    }
    return most, ok
}

// BullishCount counts valid records with a positive change.
func BullishCount(records []stock.Record) int {
    n := 0
    for _, r := range records {
        if r.Valid() && r.ChangePercent > 0 { n++ }
    }
    return n
}

// BearishCount counts valid records with a negative change.
func BearishCount(records []stock.Record) int {
    n := 0
    for _, r := range records {
        if r.Valid() && r.ChangePercent < 0 { n++ }
    }
    return n
}

// AverageChange is the mean change over valid records, 0 when there are none.
func AverageChange(records []stock.Record) float64 {
    sum, n := 0.0, 0
    for _, r := range records {
        if !r.Valid() { continue }
        sum += r.ChangePercent
        n++
    }
    if n == 0 { return 0 }
    return sum / float64(n)
}

// TotalValue sums the prices of valid records.
func TotalValue(records []stock.Record) float64 {
    total := decimal.Zero
    for _, r := range records {
        if r.Valid() { total = total.Add(decimal.NewFromFloat(r.CurrentPrice)) }
    }
    return total.InexactFloat64()
}

// Sentiment is Bullish when more than half of the valid records gained,
// Bearish when more than half lost, Mixed otherwise and Neutral when there is
// nothing to judge.
func Sentiment(records []stock.Record) string {
    valid := 0
    for _, r := range records {
        if r.Valid() { valid++ }
    }
    if valid == 0 { return SentimentNeutral }
    switch bull, bear := BullishCount(records), BearishCount(records); {
    case bull*2 > valid:
        return SentimentBullish
    case bear*2 > valid:
        return SentimentBearish
    default:
        return SentimentMixed
    }
}

// Trending returns up to limit valid records ordered by change, highest first.
// Records with equal change keep their input order. The input is not modified.
func Trending(records []stock.Record, limit int) []stock.Record {
    out := Valid(records)
    sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePercent > out[j].ChangePercent })
    if limit >= 0 && len(out) > limit { out = out[:limit] }
    return out
}

// Summary bundles every derived figure.
type Summary struct {
    Total         int
    Valid         int
    Bullish       int
    Bearish       int
    AverageChange float64
    TotalValue    float64
    Sentiment     string
    Best          *stock.Record
    MostVolatile  *stock.Record
}

// Summarize computes a Summary over records.
func Summarize(records []stock.Record) Summary {
    s := Summary{
        Total:         len(records),
        Valid:         len(Valid(records)),
        Bullish:       BullishCount(records),
        Bearish:       BearishCount(records),
        AverageChange: AverageChange(records),
        TotalValue:    TotalValue(records),
        Sentiment:     Sentiment(records),
    }
    if best, ok := BestPerforming(records); ok { s.Best = &best }
    if most, ok := MostVolatile(records); ok { s.MostVolatile = &most }
    return s
}
