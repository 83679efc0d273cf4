package web

// ── Dashboard page ────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "dashboard.html"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#f8fafc;color:#0f172a;font-size:14px;line-height:1.5}
header{background:#1e293b;color:#f8fafc;padding:16px 24px;display:flex;align-items:center;gap:24px;flex-wrap:wrap}
header h1{font-size:20px}
header p{color:#94a3b8}
.api-status{margin-left:auto;display:flex;align-items:center;gap:8px}
.status-indicator{width:10px;height:10px;border-radius:50%;background:#ef4444}
.status-indicator.online{background:#22c55e}
main{padding:24px;display:flex;flex-direction:column;gap:24px}
section{background:#fff;border:1px solid #e2e8f0;border-radius:8px;padding:16px}
h3{font-size:15px;margin-bottom:12px}
h4{font-size:13px;color:#475569;margin-bottom:8px}
.input-mode-toggle{display:flex;gap:8px;margin-bottom:16px}
.input-mode-toggle button{padding:6px 14px;border:1px solid #cbd5e1;border-radius:6px;background:#fff;cursor:pointer}
.input-mode-toggle button.active{background:#3b82f6;border-color:#3b82f6;color:#fff}
.input-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(180px,1fr));gap:12px;margin-bottom:12px}
.input-field label{display:block;font-size:12px;color:#475569}
.input-field input{width:100%;padding:6px 8px;border:1px solid #cbd5e1;border-radius:6px}
.analyze-button{padding:8px 18px;border:0;border-radius:6px;background:#6c35ed;color:#fff;cursor:pointer}
.analyze-button:disabled{background:#94a3b8;cursor:not-allowed}
.error-message{margin-top:12px;padding:8px 12px;border-radius:6px;background:#fee2e2;color:#991b1b}
.metrics-overview{display:flex;gap:12px;flex-wrap:wrap}
.metric-card{flex:1;min-width:160px;border:2px solid #e2e8f0;border-radius:8px;padding:12px 16px}
.metric-value{font-size:24px;font-weight:700}
.heatmap-grid{display:grid;gap:3px;overflow-x:auto}
.heatmap-cell{height:44px;border-radius:4px;display:flex;flex-direction:column;align-items:center;justify-content:center;color:#0f172a;font-size:12px;font-weight:600;opacity:0;transition:opacity .3s}
.heatmap-cell.revealed{opacity:1}
.zone-label-cell,.time-label-cell{font-size:12px;color:#475569;display:flex;align-items:center}
.time-label-cell{justify-content:center}
.legend-items{display:flex;gap:16px;flex-wrap:wrap;margin-top:12px}
.legend-item{display:flex;align-items:center;gap:6px;font-size:12px}
.legend-color{width:14px;height:14px;border-radius:3px}
.chart img{width:100%;max-width:900px}
table{width:100%;border-collapse:collapse;font-size:13px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #e2e8f0;color:#475569}
td{padding:5px 10px;border-bottom:1px solid #f1f5f9}
.risk-badge{display:inline-block;padding:1px 8px;border-radius:10px;font-size:11px;font-weight:600;color:#fff;background:#6b7280}
.risk-badge.low{background:#22c55e}
.risk-badge.medium{background:#eab308}
.risk-badge.high{background:#f97316}
.risk-badge.critical{background:#ef4444}
.placeholder{color:#64748b;text-align:center;padding:48px}
</style>
</head>
<body>
<header>
  <h1>Airport Congestion Prediction System</h1>
  <p>Real-time forecasting powered by AI and ARIMA models</p>
  <div class="api-status">
    <span id="status-indicator" class="status-indicator {{if .State.Connected}}online{{else}}offline{{end}}"></span>
    <span id="status-text">Backend: {{if .State.Connected}}Connected{{else}}Disconnected{{end}}</span>
  </div>
</header>
<main>
<section class="control-panel">
  <form class="input-mode-toggle" method="post" action="/mode">
    <button name="mode" value="manual" class="{{if eq .State.Mode "manual"}}active{{end}}">Manual Input</button>
    <button name="mode" value="simulated" class="{{if eq .State.Mode "simulated"}}active{{end}}">Simulated Data</button>
  </form>
  {{if eq .State.Mode "manual"}}
  <form method="post" action="/analyze">
    <h3>Enter Operational Data</h3>
    <div class="input-grid">
      <div class="input-field"><label>CCTV Passenger Count</label><input type="number" name="cctv_count" value="{{.Manual.CCTVCount}}" placeholder="e.g., 450"></div>
      <div class="input-field"><label>Terminal Capacity</label><input type="number" name="terminal_capacity" value="{{.Manual.TerminalCapacity}}" placeholder="e.g., 1000"></div>
      <div class="input-field"><label>Active Flights</label><input type="number" name="active_flights" value="{{.Manual.ActiveFlights}}" placeholder="e.g., 25"></div>
      <div class="input-field"><label>Arriving Flights</label><input type="number" name="arriving_flights" value="{{.Manual.ArrivingFlights}}" placeholder="e.g., 15"></div>
      <div class="input-field"><label>Departing Flights</label><input type="number" name="departing_flights" value="{{.Manual.DepartingFlights}}" placeholder="e.g., 10"></div>
    </div>
    <button class="analyze-button" {{if or .State.Loading (not .State.Connected)}}disabled{{end}}>{{if .State.Loading}}Analyzing...{{else}}Analyze Congestion{{end}}</button>
  </form>
  {{else}}
  <form method="post" action="/simulate">
    <p>Using simulated real-time data from CCTV, AODB, and capacity systems</p>
    <button class="analyze-button" {{if or .State.Loading (not .State.Connected)}}disabled{{end}}>{{if .State.Loading}}Generating...{{else}}Run Simulation{{end}}</button>
  </form>
  {{end}}
  {{with .State.Error}}<div class="error-message">{{.}}</div>{{end}}
</section>
{{with .State.View}}
<section class="metrics-overview">
  <div class="metric-card"><h4>Current Passengers</h4><div class="metric-value">{{.Summary.CurrentPassengers}}</div></div>
  <div class="metric-card"><h4>Terminal Capacity</h4><div class="metric-value">{{.Summary.TerminalCapacity}}</div></div>
  <div class="metric-card" style="border-color:{{css .Summary.UtilizationClass.Color}}"><h4>Utilization Rate</h4><div class="metric-value">{{.Summary.Utilization}} {{.Summary.UtilizationClass.Marker.Glyph}}</div></div>
  <div class="metric-card" style="border-color:{{css .Summary.RiskColor}}"><h4>Risk Level</h4><div class="metric-value" style="color:{{css .Summary.RiskColor}}">{{.Summary.RiskLevel}}</div></div>
</section>
<section class="insights">
  <h3>AI Analysis</h3>
  {{range .Summary.Insights}}<p>{{.}}</p>{{end}}
</section>
<section class="recommendations">
  <h3>Recommendations</h3>
  <ul>{{range .Summary.Recommendations}}<li>{{.}}</li>{{end}}</ul>
</section>
{{template "heatmap" .}}
<section class="visualizations">
  <h3>Forecast Visualizations</h3>
  <div class="chart"><h4>Predicted Passenger Count</h4><img src="/charts/forecast.svg?g={{.Generation}}" alt="forecast"></div>
  <div class="chart"><h4>Terminal Utilization Rate (%)</h4><img src="/charts/utilization.svg?g={{.Generation}}" alt="utilization"></div>
  <div class="chart"><h4>Risk Level Distribution</h4><img src="/charts/risk.svg?g={{.Generation}}" alt="risk"></div>
  <h4>Detailed Forecast Data</h4>
  <table>
    <thead><tr><th>Time</th><th>Predicted Count</th><th>Utilization %</th><th>Risk Level</th><th>Confidence Range</th></tr></thead>
    <tbody>
    {{range .Charts.Detail}}<tr><td>{{.Time}}</td><td>{{.PredictedCount}}</td><td>{{.Utilization}}</td><td><span class="risk-badge {{.Badge}}">{{.Risk}}</span></td><td>{{.ConfidenceRange}}</td></tr>
    {{end}}
    </tbody>
  </table>
</section>
{{else}}
<div class="placeholder">Enter data and click "Analyze" to see forecasts and AI insights</div>
{{end}}
</main>
<script>
(function(){
  var gen = {{generation .State.View}};
  var es = new EventSource("/api/events");
  es.onmessage = function(m){
    var ev = JSON.parse(m.data);
    if (ev.type === "reveal" && ev.generation === gen) {
      var el = document.getElementById("cell-" + ev.zone + "-" + ev.slot);
      if (el) el.classList.add("revealed");
    } else if (ev.type === "result" && ev.generation !== gen) {
      window.location.reload();
    } else if (ev.type === "status") {
      document.getElementById("status-indicator").className = "status-indicator " + (ev.connected ? "online" : "offline");
      document.getElementById("status-text").textContent = "Backend: " + (ev.connected ? "Connected" : "Disconnected");
    }
  };
})();
</script>
</body>
</html>
{{end}}
`

// ── Heatmap ───────────────────────────────────────────────────────────────────

const tmplHeatmap = `
{{define "heatmap"}}
<section class="heatmap-visualization">
  <h3>Real-Time Congestion Heatmap</h3>
  <p>Next 3 hours - 15-minute intervals</p>
  <div class="heatmap-grid" style="grid-template-columns:180px repeat({{len .Heatmap.TimeSlots}},minmax(56px,1fr))">
    <div class="zone-label-cell">Terminal Zones</div>
    {{range .Heatmap.TimeSlots}}<div class="time-label-cell">{{.}}</div>{{end}}
    {{range .Heatmap.Rows}}
    <div class="zone-label-cell">{{.Zone.Name}}</div>
    {{range .Cells}}<div id="cell-{{.ZoneIndex}}-{{.TimeIndex}}" class="heatmap-cell{{if .Revealed}} revealed{{end}}" style="background-color:{{css .Color}}" title="{{.Tooltip}}"><span>{{.Value}}</span><span>{{.Glyph}}</span></div>{{end}}
    {{end}}
  </div>
  <div class="legend-items">
    {{range .Heatmap.Legend}}<div class="legend-item"><div class="legend-color" style="background-color:{{css .Color}}"></div><span>{{.Label}}</span></div>{{end}}
  </div>
</section>
{{end}}
`
