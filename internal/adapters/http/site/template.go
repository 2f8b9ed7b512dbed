package site

// pageTemplate is the visualization page. Segment geometry and colors come
// from the server; the script in static/app.js keeps the page in sync with
// the session state as the viewer scrolls and hovers.
const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Life flies</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body class="layout-{{.Layout}}" data-min-age="{{.Span.MinAge}}" data-max-age="{{.Span.MaxAge}}">

<div id="strip" class="strip" aria-hidden="true">
{{- range .Segments}}
  <div class="segment{{if .Visible}} visible{{end}}{{if .EventLabel}} milestone{{end}}"
       data-age="{{.Age}}" data-year-pct="{{.YearPercent}}"{{if .EventLabel}} data-event="{{.EventLabel}}"{{end}}
       style="--w:{{pct .WidthPercent}}%;--hue:{{.Hue}}"></div>
{{- end}}
</div>

<div id="age-callout" class="callout">
  <span class="callout-label">age</span>
  <span id="current-age">{{.CurrentAge}}</span>
</div>

<div id="hover-tip" class="tooltip" hidden>
  <span id="hover-age"></span>
  <span id="hover-pct"></span>
  <span id="hover-event"></span>
</div>

{{if .InfoBox}}
<aside id="info-box" class="info-box">
  <button id="info-toggle" class="info-toggle" aria-expanded="true">?</button>
  <div id="info-body">
    <p>Each bar is one year of a life. A year at age n is drawn with a width
    proportional to 1/n, so the years shrink the way they feel: scroll down
    to age, hover a bar to inspect a year.</p>
  </div>
</aside>
{{end}}

<main class="content">
  <h1>Why time flies</h1>
  <ol id="facts" class="facts">
{{- range $i, $fact := .Facts}}
    <li class="fact" data-index="{{$i}}">{{$fact}}</li>
{{- end}}
  </ol>
</main>

<script src="/static/app.js"></script>
</body>
</html>
`
