package terminal

import (
    "fmt"
    "time"
)

// FormatCurrency abbreviates v with a B, M or K suffix.
func FormatCurrency(v float64) string {
    switch {
    case v >= 1e9:
        return fmt.Sprintf("$%.2fB", v/1e9)
    case v >= 1e6:
        return fmt.Sprintf("$%.2fM", v/1e6)
    case v >= 1e3:
        return fmt.Sprintf("$%.2fK", v/1e3)
    default:
        return fmt.Sprintf("$%.2f", v)
    }
}

// FormatPercent renders pct with an explicit sign for non-negative values.
func FormatPercent(pct float64) string {
    if pct >= 0 {
        return fmt.Sprintf("+%.2f%%", pct)
    }
    return fmt.Sprintf("%.2f%%", pct)
}

// MarketOpen reports whether t falls within regular trading hours,
// Monday to Friday 09:30 to 16:00 inclusive, in t's location. Holidays are
// not considered.
func MarketOpen(t time.Time) bool {
    if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
        return false
    }
    m := t.Hour()*60 + t.Minute()
    return m >= 9*60+30 && m <= 16*60
}
