package controllers

import (
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// PageData parameterizes the live results page.
type PageData struct {
	Title       string
	PollSeconds int
}

var livePage = template.Must(template.New("live").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - Live Results</title>
<style>
  body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; color: #333; }
  .container { max-width: 1200px; margin: 0 auto; display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
  h1 { grid-column: 1 / 3; text-align: center; color: #2c3e50; }
  .card { background: white; padding: 16px; border-radius: 8px; box-shadow: 0 2px 6px rgba(0,0,0,.1); }
  h2 { color: #34495e; border-bottom: 2px solid #3498db; padding-bottom: 6px; margin-top: 0; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
  th { background: #3498db; color: white; }
  #status { grid-column: 1 / 3; text-align: center; color: #7f8c8d; }
</style>
</head>
<body>
<div class="container">
  <h1>{{.Title}} &mdash; Live Results</h1>
  <div class="card"><h2>Top 10 Men</h2><table id="men"></table></div>
  <div class="card"><h2>Top 10 Women</h2><table id="women"></table></div>
  <div class="card"><h2>Latest 6 Finishers</h2><table id="latest"></table></div>
  <div class="card"><h2>Statistics</h2><div id="stats"></div></div>
  <div class="card"><h2>Top 2 Men's Teams</h2><div id="menteams"></div></div>
  <div class="card"><h2>Top 2 Women's Teams</h2><div id="womenteams"></div></div>
  <div id="status">Loading&hellip;</div>
</div>
<script>
function fmt(s) {
  var m = Math.floor(s / 60), r = s % 60;
  return String(m).padStart(2, '0') + ':' + String(r).padStart(2, '0');
}
function rows(id, list) {
  var h = '<tr><th>Pos</th><th>Name</th><th>Organisation</th><th>Time</th><th>Reg</th></tr>';
  (list || []).forEach(function (r) {
    h += '<tr><td>' + r.rank + '</td><td>' + r.name + '</td><td>' + r.organisational_unit +
         '</td><td>' + fmt(r.elapsed) + '</td><td>' + r.registration_number + '</td></tr>';
  });
  document.getElementById(id).innerHTML = h;
}
function teams(id, list) {
  var h = '';
  (list || []).forEach(function (t, i) {
    h += '<p><strong>' + (i + 1) + '. ' + t.organisational_unit + '</strong> &mdash; ' + fmt(t.total_time) + '</p><ol>';
    t.runners.forEach(function (r) { h += '<li>' + r.name + ' &mdash; ' + fmt(r.elapsed) + '</li>'; });
    h += '</ol>';
  });
  document.getElementById(id).innerHTML = h || '<p>No eligible teams yet (minimum 4 finishers).</p>';
}
function refresh() {
  var get = function (url) { return fetch(url).then(function (r) { return r.json(); }); };
  Promise.all([
    get('/api/top/male?limit=10'), get('/api/top/female?limit=10'),
    get('/api/latest?limit=6'), get('/api/teams/male?limit=2'),
    get('/api/teams/female?limit=2'), get('/api/stats'), get('/api/updated')
  ]).then(function (d) {
    rows('men', d[0]); rows('women', d[1]); rows('latest', d[2]);
    teams('menteams', d[3]); teams('womenteams', d[4]);
    var s = d[5], h = '<p>Total finishers: ' + s.total_finishers + ' / ' + s.total_registered + ' registered</p>';
    if (s.top_unit) h += '<p>Most finishers: ' + s.top_unit + ' (' + s.top_unit_count + ')</p>';
    if (s.fastest) h += '<p>Fastest: ' + s.fastest.name + ' &mdash; ' + fmt(s.fastest.elapsed) + '</p>';
    if (s.endurance) h += '<p>Endurance winner: ' + s.endurance.name + ' &mdash; ' + fmt(s.endurance.elapsed) + '</p>';
    document.getElementById('stats').innerHTML = h;
    var u = d[6].updated_at;
    document.getElementById('status').textContent = u ?
      'Last update: ' + new Date(u * 1000).toLocaleTimeString() : 'Waiting for results…';
  }).catch(function () {
    document.getElementById('status').textContent = 'Connection lost, retrying…';
  });
}
refresh();
setInterval(refresh, {{.PollSeconds}} * 1000);
</script>
</body>
</html>`))

// GetLivePage serves the self-refreshing results page. The page is a plain
// poller: it re-runs the same read-only queries every few seconds.
func (rc ResultsController) GetLivePage(data PageData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := livePage.Execute(w, data); err != nil {
			log.WithError(err).Error("failed to render live page")
		}
	}
}
