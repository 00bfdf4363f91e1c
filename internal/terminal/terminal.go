// Package terminal renders the interactive screens.
package terminal

import (
    "fmt"
    "io"
    "strings"
    "time"

    "github.com/charmbracelet/lipgloss"
    "github.com/charmbracelet/lipgloss/table"

    "stocktracker/internal/metrics"
    "stocktracker/internal/stock"
)

// Screen writes styled output to one writer. Colors are dropped when the
// writer is not a terminal.
type Screen struct {
    w io.Writer
    r *lipgloss.Renderer

    title   lipgloss.Style
    box     lipgloss.Style
    border  lipgloss.Style
    header  lipgloss.Style
    gain    lipgloss.Style
    loss    lipgloss.Style
    dim     lipgloss.Style
    symbol  lipgloss.Style
    success lipgloss.Style
    failure lipgloss.Style
}

// New creates a Screen on w.
func New(w io.Writer) *Screen {
    r := lipgloss.NewRenderer(w)
    return &Screen{
        w:       w,
        r:       r,
        title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
        box:     r.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1),
        border:  r.NewStyle().Foreground(lipgloss.Color("245")),
        header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1),
        gain:    r.NewStyle().Foreground(lipgloss.Color("10")),
        loss:    r.NewStyle().Foreground(lipgloss.Color("9")),
        dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
        symbol:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
        success: r.NewStyle().Foreground(lipgloss.Color("10")),
        failure: r.NewStyle().Foreground(lipgloss.Color("9")),
    }
}

func (s *Screen) println(parts ...string) {
    fmt.Fprintln(s.w, strings.Join(parts, ""))
}

func (s *Screen) change(pct float64) lipgloss.Style {
    switch {
    case pct > 0:
        return s.gain
    case pct < 0:
        return s.loss
    default:
        return s.dim
    }
}

// Header prints the title box with the current time and data mode.
func (s *Screen) Header(now time.Time, offline bool) {
    s.println(s.box.Render(s.title.Render("SMART STOCK TRACKER") + "\n" + "Real-Time Market Analysis"))
    market := "CLOSED"
    if MarketOpen(now) {
        market = "OPEN"
    }
    mode := "LIVE DATA"
    if offline {
        mode = "OFFLINE (demo data)"
    }
    s.println(s.dim.Render("Last Updated: "), now.Format("Mon Jan 2 15:04:05 2006"))
    s.println(s.dim.Render("Status: "), mode, s.dim.Render("  Market: "), market)
    s.println()
}

// Best prints the stock-of-the-day card.
func (s *Screen) Best(r stock.Record) {
    body := strings.Join([]string{
        s.title.Render("STOCK OF THE DAY"),
        fmt.Sprintf("Symbol:  %s", s.symbol.Render(r.Symbol)),
        fmt.Sprintf("Company: %s", r.Name),
        fmt.Sprintf("Price:   $%.2f", r.CurrentPrice),
        fmt.Sprintf("Change:  %s", s.change(r.ChangePercent).Render(FormatPercent(r.ChangePercent))),
        fmt.Sprintf("Status:  %s", r.Status),
    }, "\n")
    s.println(s.box.Render(body))
    s.println()
}

// Table prints every valid record in input order.
func (s *Screen) Table(records []stock.Record) {
    valid := metrics.Valid(records)
    t := table.New().
        Border(lipgloss.NormalBorder()).
        BorderStyle(s.border).
        Headers("SYMBOL", "PRICE", "CHANGE %", "VOLUME", "STATUS")
    for _, r := range valid {
        t.Row(r.Symbol, fmt.Sprintf("$%.2f", r.CurrentPrice), FormatPercent(r.ChangePercent), fmt.Sprintf("%.0f", r.Volume), r.Status)
    }
    t.StyleFunc(func(row, col int) lipgloss.Style {
        if row == table.HeaderRow {
            return s.header
        }
        st := s.r.NewStyle().Padding(0, 1)
        if col == 2 && row >= 0 && row < len(valid) {
            return st.Inherit(s.change(valid[row].ChangePercent))
        }
        return st
    })
    s.println(s.title.Render("LIVE STOCK PRICES"))
    s.println(t.String())
    s.println()
}

// Trending prints the top gainers.
func (s *Screen) Trending(records []stock.Record, limit int) {
    s.println(s.title.Render("TRENDING NOW (Top Gainers)"))
    for i, r := range metrics.Trending(records, limit) {
        s.println(fmt.Sprintf("%d. %s ", i+1, s.symbol.Render(r.Symbol)),
            s.change(r.ChangePercent).Render(FormatPercent(r.ChangePercent)),
            fmt.Sprintf(" ($%.2f)", r.CurrentPrice))
    }
    s.println()
}

// Analysis prints the detailed market analysis.
func (s *Screen) Analysis(sum metrics.Summary) {
    s.println(s.title.Render("DETAILED MARKET ANALYSIS"))
    s.println(fmt.Sprintf("Total Portfolio Value: $%.2f (%s)", sum.TotalValue, FormatCurrency(sum.TotalValue)))
    s.println(fmt.Sprintf("Bullish Stocks: %d/%d", sum.Bullish, sum.Valid))
    s.println(fmt.Sprintf("Bearish Stocks: %d/%d", sum.Bearish, sum.Valid))
    if sum.MostVolatile != nil {
        s.println("Most Volatile: ", s.symbol.Render(sum.MostVolatile.Symbol), " (",
            s.change(sum.MostVolatile.ChangePercent).Render(FormatPercent(sum.MostVolatile.ChangePercent)), ")")
    }
    s.println("Average Change: ", s.change(sum.AverageChange).Render(FormatPercent(sum.AverageChange)))
    s.println("Market Sentiment: ", sum.Sentiment)
    s.println()
}

// Menu prints the main menu and the input prompt.
func (s *Screen) Menu() {
    items := strings.Join([]string{
        s.title.Render("MAIN MENU"),
        "1. Refresh Stock Data",
        "2. View Detailed Analysis",
        "5. Exit",
    }, "\n")
    s.println(s.r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Render(items))
    fmt.Fprint(s.w, "Enter your choice (1-5): ")
}

// Success prints a positive status line.
func (s *Screen) Success(format string, args ...any) {
    s.println(s.success.Render(fmt.Sprintf(format, args...)))
}

// Failure prints a negative status line.
func (s *Screen) Failure(format string, args ...any) {
    s.println(s.failure.Render(fmt.Sprintf(format, args...)))
}

// Info prints a plain line.
func (s *Screen) Info(format string, args ...any) {
    s.println(fmt.Sprintf(format, args...))
}
