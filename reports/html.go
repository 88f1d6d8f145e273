package reports

import (
	"html/template"
	"strings"

	"github.com/shaze/lennsmith/models"
	"github.com/shaze/lennsmith/utils"
)

type htmlData struct {
	Title       string
	GeneratedAt string
	TopMen      []models.RankedRunner
	TopWomen    []models.RankedRunner
	MenTeams    []models.TeamResult
	WomenTeams  []models.TeamResult
	Complete    []models.RankedRunner
	Stats       *models.Statistics
}

var htmlReport = template.Must(template.New("results").Funcs(template.FuncMap{
	"fmtTime": utils.FormatElapsed,
	"inc":     func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - Results</title>
<style>
  body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; color: #333; }
  .container { max-width: 1200px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; }
  h1 { color: #2c3e50; text-align: center; }
  h2 { color: #34495e; border-bottom: 3px solid #3498db; padding-bottom: 10px; margin-top: 40px; }
  table { border-collapse: collapse; width: 100%; margin: 20px 0; }
  th, td { border: 1px solid #ddd; padding: 10px 14px; text-align: left; }
  th { background: #3498db; color: white; }
  tr:nth-child(even) { background: #f8f9fa; }
  .stats, .endurance { background: #34495e; color: white; padding: 20px; border-radius: 10px; text-align: center; margin: 20px 0; }
  .team { background: #f8f9fa; border-left: 5px solid #3498db; padding: 15px; margin: 20px 0; }
  .timestamp { text-align: center; color: #7f8c8d; font-style: italic; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<div class="timestamp">Results generated on {{.GeneratedAt}}</div>

<h2>Top 6 Men</h2>
<table>
<tr><th>Position</th><th>Name</th><th>Organisation</th><th>Time</th></tr>
{{range .TopMen}}<tr><td>{{.Rank}}</td><td>{{.Name}}</td><td>{{.OrganisationalUnit}}</td><td>{{fmtTime .Elapsed}}</td></tr>
{{end}}</table>

<h2>Top 6 Women</h2>
<table>
<tr><th>Position</th><th>Name</th><th>Organisation</th><th>Time</th></tr>
{{range .TopWomen}}<tr><td>{{.Rank}}</td><td>{{.Name}}</td><td>{{.OrganisationalUnit}}</td><td>{{fmtTime .Elapsed}}</td></tr>
{{end}}</table>

<h2>Top 2 Men's Teams</h2>
{{if .MenTeams}}{{range $i, $t := .MenTeams}}
<div class="team">
<h3>{{inc $i}}. {{$t.OrganisationalUnit}} - Total Time: {{fmtTime $t.TotalTime}}</h3>
<table><tr><th>Runner</th><th>Time</th></tr>
{{range $t.Runners}}<tr><td>{{.Name}}</td><td>{{fmtTime .Elapsed}}</td></tr>
{{end}}</table>
</div>
{{end}}{{else}}<p>No eligible men's teams (minimum 4 finishers required)</p>{{end}}

<h2>Top 2 Women's Teams</h2>
{{if .WomenTeams}}{{range $i, $t := .WomenTeams}}
<div class="team">
<h3>{{inc $i}}. {{$t.OrganisationalUnit}} - Total Time: {{fmtTime $t.TotalTime}}</h3>
<table><tr><th>Runner</th><th>Time</th></tr>
{{range $t.Runners}}<tr><td>{{.Name}}</td><td>{{fmtTime .Elapsed}}</td></tr>
{{end}}</table>
</div>
{{end}}{{else}}<p>No eligible women's teams (minimum 4 finishers required)</p>{{end}}

<div class="stats">
<h3>Race Statistics</h3>
{{if .Stats.TopUnit}}<p><strong>Most Finishers:</strong> {{.Stats.TopUnit}} ({{.Stats.TopUnitCount}} runners)</p>{{end}}
<p><strong>Total Finishers:</strong> {{.Stats.TotalFinishers}}</p>
<p><strong>Total Registered:</strong> {{.Stats.TotalRegistered}}</p>
{{if .Stats.Fastest}}<p><strong>Fastest Overall:</strong> {{.Stats.Fastest.Name}} - {{fmtTime .Stats.Fastest.Elapsed}}</p>{{end}}
</div>

{{if .Stats.Endurance}}
<div class="endurance">
<h3>Endurance Winner</h3>
<p><strong>{{.Stats.Endurance.Name}}</strong></p>
<p>{{.Stats.Endurance.OrganisationalUnit}}</p>
<p>Time: {{fmtTime .Stats.Endurance.Elapsed}}</p>
</div>
{{end}}

<h2>Complete Results</h2>
<table>
<tr><th>Arrival Position</th><th>Name</th><th>Organisation</th><th>Time</th></tr>
{{range .Complete}}<tr><td>{{.Position}}</td><td>{{.Name}}</td><td>{{.OrganisationalUnit}}</td><td>{{fmtTime .Elapsed}}</td></tr>
{{end}}</table>
</div>
</body>
</html>`))

// HTML renders the full results page: top 6 per gender, top 2 teams per
// gender, statistics, endurance winner and the complete arrival-order list.
func (g Generator) HTML() (string, error) {
	b, err := g.gather(6)
	if err != nil {
		return "", err
	}
	data := htmlData{
		Title:       g.Title,
		GeneratedAt: g.now().Format("January 2, 2006 at 15:04:05"),
		TopMen:      b.TopMen,
		TopWomen:    b.TopWomen,
		MenTeams:    b.MenTeams,
		WomenTeams:  b.WomenTeams,
		Complete:    b.Complete,
		Stats:       b.Stats,
	}
	var sb strings.Builder
	if err := htmlReport.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
