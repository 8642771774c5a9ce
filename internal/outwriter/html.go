package outwriter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// htmlReportName is the document written inside the report directory.
const htmlReportName = "index.html"

// htmlReportPage is the static dashboard committed alongside CI artifacts.
// History series are embedded as JSON arrays so the page needs no backend.
const htmlReportPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Performance Gate Report</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: right; }
th { background: #f0f0f0; }
td.name { text-align: left; }
.passed { color: #1a7f37; font-weight: bold; }
.failed { color: #cf222e; font-weight: bold; }
canvas { border: 1px solid #ddd; margin: 1rem 0; }
footer { color: #888; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>Performance Gate Report</h1>
<p>Run at {{.GeneratedAt}} for commit <code>{{.Result.Commit}}</code> on branch <code>{{.Result.Branch}}</code>.</p>
<p>Outcome: {{if .Result.Passed}}<span class="passed">PASSED</span>{{else}}<span class="failed">FAILED</span>{{end}}</p>
<table>
<tr><th>Kind</th><th>Check</th><th>Value</th><th>Threshold</th><th>Outcome</th></tr>
{{range .Result.Results}}
<tr>
<td class="name">{{.Kind}}</td>
<td class="name">{{.Name}}</td>
<td>{{checkValue .}}</td>
<td>{{checkThreshold .}}</td>
<td class="{{.Outcome}}">{{outcome .Outcome}}</td>
</tr>
{{end}}
</table>
<h2>Score history</h2>
<canvas id="chart" width="900" height="300"></canvas>
<script>
const labels = {{.Labels}};
const performanceSeries = {{.Performance}};
const accessibilitySeries = {{.Accessibility}};
const canvas = document.getElementById('chart');
const ctx = canvas.getContext('2d');
function drawSeries(series, color) {
  if (series.length < 2) return;
  ctx.strokeStyle = color;
  ctx.beginPath();
  const stepX = canvas.width / (series.length - 1);
  series.forEach((v, i) => {
    const x = i * stepX;
    const y = canvas.height - (v / 100) * canvas.height;
    if (i === 0) ctx.moveTo(x, y); else ctx.lineTo(x, y);
  });
  ctx.stroke();
}
drawSeries(performanceSeries, '#1a7f37');
drawSeries(accessibilitySeries, '#0969da');
</script>
<footer>Generated by perfgate</footer>
</body>
</html>
`

// htmlReportData is the template payload for the static dashboard.
type htmlReportData struct {
	GeneratedAt   string
	Result        *schema.GateResult
	Labels        []string
	Performance   []int
	Accessibility []int
}

// WriteHTMLReport renders the static dashboard into reportDir. The caller
// treats failures as advisory, so this never aborts a gate run.
func WriteHTMLReport(reportDir string, result *schema.GateResult, entries []schema.HistoryEntry) error {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", reportDir, err)
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"checkValue":     formatCheckValue,
		"checkThreshold": formatCheckThreshold,
		"outcome":        contract.GetPlainOutcomeLabel,
	}).Parse(htmlReportPage)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	data := htmlReportData{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Result:      result,
	}
	for _, entry := range entries {
		data.Labels = append(data.Labels, entry.Timestamp.Format("2006-01-02"))
		data.Performance = append(data.Performance, entry.Scores[schema.PerformanceCategory])
		data.Accessibility = append(data.Accessibility, entry.Scores[schema.AccessibilityCategory])
	}

	path := filepath.Join(reportDir, htmlReportName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report document %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render report document: %w", err)
	}
	return nil
}
