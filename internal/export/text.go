package export

import (
    "fmt"
    "strings"
    "time"

    "stocktracker/internal/stock"
)

const rule = "========================================"

// Text renders the stock_data.txt table. Invalid records are skipped from
// the rows but counted in the footer.
func Text(records []stock.Record, now time.Time) string {
    var b strings.Builder
    b.WriteString("# Smart Stock Tracker - Stock Data Export\n")
    fmt.Fprintf(&b, "# Generated on: %s\n", now.Format(TimeLayout))
    b.WriteString("# Format: Symbol, Name, Price, Change%, Volume, Status\n")
    b.WriteString(rule + "\n\n")
    for _, r := range records {
        if !r.Valid() {
            continue
        }
        fmt.Fprintf(&b, "%-8s | %-30s | $%-10.2f | %+7.2f%% | %-12.0f | %s\n",
            r.Symbol, r.Name, r.CurrentPrice, r.ChangePercent, r.Volume, r.Status)
    }
    b.WriteString("\n" + rule + "\n")
    fmt.Fprintf(&b, "Total stocks processed: %d\n", len(records))
    return b.String()
}
