// Package web generates the static dashboard. The page is rendered server
// side from the same document as data.json, so it works when opened from disk;
// app.js refreshes it from data.json when served over HTTP.
package web

import (
    "bytes"
    "embed"
    "fmt"
    "html/template"
    "os"
    "path/filepath"
    "time"

    "go.uber.org/multierr"

    "stocktracker/internal/export"
    "stocktracker/internal/stock"
)

// Files written by Generate besides data.json.
const (
    IndexFile  = "index.html"
    StyleFile  = "style.css"
    ScriptFile = "app.js"
)

//go:embed assets
var assets embed.FS

var page = template.Must(template.New("index.html.tmpl").Funcs(template.FuncMap{
    "signed":      signed,
    "changeClass": changeClass,
}).ParseFS(assets, "assets/index.html.tmpl"))

func signed(v float64) string {
    if v > 0 {
        return fmt.Sprintf("+%.2f%%", v)
    }
    return fmt.Sprintf("%.2f%%", v)
}

func changeClass(v float64) string {
    switch {
    case v > 0:
        return "up"
    case v < 0:
        return "down"
    default:
        return "flat"
    }
}

// Render returns the dashboard page for d.
func Render(d export.Dashboard) ([]byte, error) {
    var buf bytes.Buffer
    if err := page.Execute(&buf, d); err != nil {
        return nil, fmt.Errorf("rendering %s: %w", IndexFile, err)
    }
    return buf.Bytes(), nil
}

// Generate writes index.html, style.css and app.js into dir. data.json is
// written by export.WriteDashboardData.
func Generate(dir string, records []stock.Record, now time.Time) error {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("creating %s: %w", dir, err)
    }
    d := export.BuildDashboard(records, now)
    html, err := Render(d)
    if err != nil {
        return err
    }
    css, err := assets.ReadFile("assets/" + StyleFile)
    if err != nil {
        return fmt.Errorf("reading %s: %w", StyleFile, err)
    }
    js, err := assets.ReadFile("assets/" + ScriptFile)
    if err != nil {
        return fmt.Errorf("reading %s: %w", ScriptFile, err)
    }
    return multierr.Combine(
        write(dir, IndexFile, html),
        write(dir, StyleFile, css),
        write(dir, ScriptFile, js),
    )
}

func write(dir, name string, data []byte) error {
    path := filepath.Join(dir, name)
    if err := os.WriteFile(path, data, 0o644); err != nil {
        return fmt.Errorf("writing %s: %w", path, err)
    }
    return nil
}
