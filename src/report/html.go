package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"cafe-analytics/src/models"
)

// -----------------------------------------------------------------------------
// Static HTML dashboard. Render produces a single self-contained page from a
// snapshot; Writer persists it to the report output directory so the dashboard
// survives without the server running.
// -----------------------------------------------------------------------------

var funcMap = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%+.1f%%", v*100) },
	"label": func(key string) string {
		if key == "" {
			return "Unknown"
		}
		return key
	},
	"weekday": func(wd int) string { return time.Weekday(wd).String() },
	"rank":    func(i int) int { return i + 1 },
	"when": func(unix int64) string {
		if unix == 0 {
			return "never"
		}
		return time.Unix(unix, 0).Format("2006-01-02 15:04:05")
	},
}

var pageTemplate = template.Must(template.New("dashboard").Funcs(funcMap).Parse(pageHTML))

// -----------------------------------------------------------------------------

// Render builds the dashboard page for one snapshot.
func Render(title string, snap *models.MSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Title    string
		Snapshot *models.MSnapshot
	}{Title: title, Snapshot: snap}

	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing dashboard template: %w", err)
	}
	return buf.Bytes(), nil
}

// -----------------------------------------------------------------------------

type Writer struct {
	OutputDir string
	Title     string
}

func NewWriter(outputDir, title string) *Writer {
	return &Writer{OutputDir: outputDir, Title: title}
}

// Write renders the snapshot and saves it as dashboard.html in the output
// directory, creating the directory if needed. Returns the written path.
func (w *Writer) Write(snap *models.MSnapshot) (string, error) {
	page, err := Render(w.Title, snap)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(w.OutputDir, "dashboard.html")
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// -----------------------------------------------------------------------------

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f4f1ec; color: #2d2a26; }
  header { background: #3e2c23; color: #f4f1ec; padding: 18px 28px; }
  header h1 { margin: 0; font-size: 1.4em; }
  header p { margin: 4px 0 0; font-size: 0.85em; opacity: 0.8; }
  main { padding: 20px 28px; }
  .cards { display: flex; flex-wrap: wrap; gap: 14px; margin-bottom: 24px; }
  .card { background: #fff; border-radius: 8px; padding: 14px 20px; min-width: 150px; box-shadow: 0 1px 3px rgba(0,0,0,0.12); }
  .card .value { font-size: 1.5em; font-weight: 600; }
  .card .name { font-size: 0.8em; color: #857d72; text-transform: uppercase; }
  section { margin-bottom: 28px; }
  h2 { font-size: 1.1em; border-bottom: 2px solid #c9b8a8; padding-bottom: 4px; }
  table { border-collapse: collapse; background: #fff; box-shadow: 0 1px 3px rgba(0,0,0,0.12); }
  th, td { padding: 6px 14px; text-align: left; border-bottom: 1px solid #eee6dc; font-size: 0.9em; }
  th { background: #e8e0d5; }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  .off { color: #a89c8d; }
  ul.insights { list-style: none; padding: 0; }
  ul.insights li { background: #fff; margin-bottom: 8px; padding: 10px 16px; border-left: 4px solid #8c6a4f; border-radius: 4px; }
  ul.insights b { color: #5c432f; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>Generated {{when .Snapshot.GeneratedAt}} &middot; {{.Snapshot.Summary.StartDate}} to {{.Snapshot.Summary.EndDate}}</p>
</header>
<main>

<div class="cards">
  <div class="card"><div class="value">{{money .Snapshot.Summary.TotalRevenue}}</div><div class="name">Total revenue</div></div>
  <div class="card"><div class="value">{{.Snapshot.Summary.TotalTransactions}}</div><div class="name">Transactions</div></div>
  <div class="card"><div class="value">{{.Snapshot.Summary.UniqueItems}}</div><div class="name">Products</div></div>
  <div class="card"><div class="value">{{.Snapshot.Summary.UniqueLocations}}</div><div class="name">Locations</div></div>
  <div class="card"><div class="value">{{.Snapshot.Cleaning.Repaired}}</div><div class="name">Rows repaired</div></div>
  <div class="card"><div class="value">{{.Snapshot.Cleaning.Discarded}}</div><div class="name">Rows discarded</div></div>
</div>

<section>
  <h2>Insights</h2>
  <ul class="insights">
  {{range .Snapshot.Insights}}<li><b>{{.Label}}:</b> {{.Text}}</li>
  {{else}}<li>No insights for this dataset.</li>{{end}}
  </ul>
</section>

<section>
  <h2>Daily revenue</h2>
  <table>
    <tr><th>Date</th><th>Revenue</th><th>Transactions</th><th>Change</th><th>Business day</th></tr>
    {{range .Snapshot.Views.Daily}}
    <tr>
      <td>{{.Date}}</td>
      <td class="num">{{money .Revenue}}</td>
      <td class="num">{{.Count}}</td>
      <td class="num">{{pct .RevenueChange}}</td>
      <td>{{if .BusinessDay}}yes{{else}}<span class="off">no</span>{{end}}</td>
    </tr>
    {{end}}
  </table>
</section>

<section>
  <h2>Weekly revenue</h2>
  <table>
    <tr><th>Week of</th><th>Revenue</th><th>Transactions</th></tr>
    {{range .Snapshot.Views.Weekly}}
    <tr><td>{{.WeekStart}}</td><td class="num">{{money .Revenue}}</td><td class="num">{{.Count}}</td></tr>
    {{end}}
  </table>
</section>

<section>
  <h2>Revenue by weekday and hour</h2>
  <table>
    <tr><th>Weekday</th><th>Hour</th><th>Revenue</th><th>Transactions</th></tr>
    {{range .Snapshot.Views.Heatmap}}
    <tr><td>{{weekday .Weekday}}</td><td class="num">{{printf "%02d:00" .Hour}}</td><td class="num">{{money .Revenue}}</td><td class="num">{{.Count}}</td></tr>
    {{end}}
  </table>
</section>

<section>
  <h2>Products</h2>
  <table>
    <tr><th>#</th><th>Item</th><th>Revenue</th><th>Units</th><th>Transactions</th><th>Avg price</th></tr>
    {{range $i, $p := .Snapshot.Views.Products}}
    <tr><td class="num">{{rank $i}}</td><td>{{label $p.Item}}</td><td class="num">{{money $p.Revenue}}</td><td class="num">{{$p.Units}}</td><td class="num">{{$p.Count}}</td><td class="num">{{money $p.AvgPrice}}</td></tr>
    {{end}}
  </table>
</section>

<section>
  <h2>Locations</h2>
  <table>
    <tr><th>Location</th><th>Revenue</th><th>Transactions</th></tr>
    {{range .Snapshot.Views.Locations}}
    <tr><td>{{label .Key}}</td><td class="num">{{money .Revenue}}</td><td class="num">{{.Count}}</td></tr>
    {{end}}
  </table>
</section>

<section>
  <h2>Payment methods</h2>
  <table>
    <tr><th>Method</th><th>Revenue</th><th>Transactions</th></tr>
    {{range .Snapshot.Views.Payments}}
    <tr><td>{{label .Key}}</td><td class="num">{{money .Revenue}}</td><td class="num">{{.Count}}</td></tr>
    {{end}}
  </table>
</section>

</main>
</body>
</html>
`
