package page

import (
	"html/template"
	"io"
	"time"

	"github.com/kylewill/send-worker/internal/model"
)

// ViewRow is one rendered line of the view history table.
type ViewRow struct {
	Time     string
	MaskedIP string
	Browser  string
	Source   string
}

// StatsData feeds the owner stats page.
type StatsData struct {
	Title         string
	CreatedDate   string
	TotalViews    int
	UniqueViewers int
	LastViewedAgo string
	LastViewedAt  string
	ViewURL       string
	AllowDownload bool
	AllowPrint    bool
	Rows          []ViewRow
}

// StatsDataFrom assembles the page data from a document and its recent views
// (newest first). now anchors the relative last-viewed label.
func StatsDataFrom(doc *model.Document, views []model.View, total, unique int, viewURL string, now time.Time) StatsData {
	data := StatsData{
		Title:         doc.Title,
		CreatedDate:   CreatedDate(doc.CreatedAt),
		TotalViews:    total,
		UniqueViewers: unique,
		LastViewedAgo: "Never",
		LastViewedAt:  "No views yet",
		ViewURL:       viewURL,
		AllowDownload: doc.AllowDownload,
		AllowPrint:    doc.AllowPrint,
	}
	if len(views) > 0 {
		data.LastViewedAgo = RelativeTime(views[0].ViewedAt, now)
		data.LastViewedAt = views[0].ViewedAt.Format("1/2/2006, 3:04:05 PM")
	}
	for _, v := range views {
		data.Rows = append(data.Rows, ViewRow{
			Time:     ViewTime(v.ViewedAt),
			MaskedIP: MaskIP(v.IPAddress),
			Browser:  BrowserName(v.UserAgent),
			Source:   RefererHost(v.Referer),
		})
	}
	return data
}

// RenderStats writes the stats HTML. The title and referer-derived hostnames
// are untrusted and escaped by html/template.
func RenderStats(w io.Writer, data StatsData) error {
	return statsTmpl.Execute(w, data)
}

var statsTmpl = template.Must(template.New("stats").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Stats — {{.Title}}</title>
<style>
  *, *::before, *::after { margin: 0; padding: 0; box-sizing: border-box; }

  :root {
    --bg: #F6F5F1;
    --surface: #FFFFFF;
    --text: #1A1A18;
    --text-muted: #8A8A82;
    --text-dim: #B5B5AD;
    --accent: #E23D28;
    --border: #E8E7E3;
    --radius: 12px;
  }

  html {
    font-family: system-ui, sans-serif;
    background: var(--bg);
    color: var(--text);
  }
  body { min-height: 100vh; }

  .topbar {
    display: flex; align-items: center; justify-content: space-between;
    padding: 0 32px; height: 56px; background: var(--surface);
    border-bottom: 1px solid var(--border); position: sticky; top: 0; z-index: 10;
  }
  .topbar-left { display: flex; align-items: center; gap: 12px; }
  .brand { display: flex; align-items: center; gap: 6px; }
  .brand-dot { width: 8px; height: 8px; border-radius: 50%; background: var(--accent); }
  .brand-name {
    font-size: 0.85rem; font-weight: 600; letter-spacing: 0.04em;
    text-transform: uppercase; color: var(--text-muted);
  }
  .divider { width: 1px; height: 20px; background: var(--border); }
  .back-link { font-size: 0.82rem; color: var(--text-muted); text-decoration: none; }
  .back-link:hover { color: var(--text); }

  .content { max-width: 880px; margin: 0 auto; padding: 40px 32px 80px; }

  .header { margin-bottom: 40px; }
  .header h1 { font-weight: 400; font-size: 2.2rem; line-height: 1.2; margin-bottom: 8px; }
  .header-meta {
    display: flex; align-items: center; gap: 16px;
    font-size: 0.82rem; color: var(--text-muted);
  }

  .chips { display: flex; gap: 8px; margin-top: 12px; }
  .chip {
    display: inline-flex; align-items: center; gap: 4px; padding: 4px 10px;
    border-radius: 6px; font-size: 0.72rem; font-weight: 500;
    text-transform: uppercase; letter-spacing: 0.03em;
  }
  .chip-on { background: #E8F5E1; color: #2D6A1E; }
  .chip-off { background: var(--bg); color: var(--text-dim); }

  .link-row { margin-top: 16px; display: flex; align-items: center; gap: 8px; }
  .link-box {
    flex: 1; padding: 10px 14px; background: var(--bg);
    border: 1px solid var(--border); border-radius: 8px;
    font-family: monospace; font-size: 0.82rem; color: var(--text-muted);
    overflow: hidden; text-overflow: ellipsis; white-space: nowrap;
  }
  .btn {
    display: inline-flex; align-items: center; gap: 6px; padding: 10px 18px;
    border: none; border-radius: 8px; font-family: inherit; font-size: 0.82rem;
    font-weight: 500; cursor: pointer; white-space: nowrap;
  }
  .btn-primary { background: var(--accent); color: #fff; }
  .btn-primary:hover { background: #C4311F; }

  .copied-toast {
    position: fixed; bottom: 24px; left: 50%; transform: translate(-50%, 20px);
    background: var(--text); color: var(--bg); padding: 10px 20px;
    border-radius: 10px; font-size: 0.82rem; font-weight: 500;
    opacity: 0; pointer-events: none; transition: all 0.25s ease; z-index: 100;
  }
  .copied-toast.show { opacity: 1; transform: translate(-50%, 0); }

  .stat-grid {
    display: grid; grid-template-columns: repeat(3, 1fr);
    gap: 16px; margin-bottom: 40px;
  }
  .stat-card {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: var(--radius); padding: 24px;
  }
  .stat-card .label {
    font-size: 0.75rem; font-weight: 500; text-transform: uppercase;
    letter-spacing: 0.06em; color: var(--text-muted); margin-bottom: 8px;
  }
  .stat-card .value { font-size: 2.6rem; font-weight: 400; line-height: 1; }
  .stat-card .sub { font-size: 0.78rem; color: var(--text-dim); margin-top: 6px; }

  .table-header {
    display: flex; align-items: baseline; justify-content: space-between;
    margin-bottom: 16px;
  }
  .table-header h2 { font-size: 0.95rem; font-weight: 600; }
  .table-header .count { font-size: 0.78rem; color: var(--text-muted); }

  .table-wrap {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: var(--radius); overflow: hidden;
  }
  table { width: 100%; border-collapse: collapse; }
  th {
    text-align: left; padding: 12px 20px; font-size: 0.72rem; font-weight: 600;
    text-transform: uppercase; letter-spacing: 0.06em; color: var(--text-muted);
    background: var(--bg); border-bottom: 1px solid var(--border);
  }
  td { padding: 14px 20px; font-size: 0.84rem; border-bottom: 1px solid var(--border); }
  tr:last-child td { border-bottom: none; }
  tr:hover td { background: #FAFAF8; }
  td code {
    font-family: monospace; font-size: 0.78rem; background: var(--bg);
    padding: 2px 8px; border-radius: 4px; color: var(--text-muted);
  }

  .empty { padding: 48px 20px; text-align: center; color: var(--text-dim); font-size: 0.88rem; }

  @media (max-width: 640px) {
    .content { padding: 24px 16px 60px; }
    .stat-grid { grid-template-columns: 1fr; }
    .topbar { padding: 0 16px; }
    th, td { padding: 10px 14px; }
    .header h1 { font-size: 1.6rem; }
  }
</style>
</head>
<body>

<header class="topbar">
  <div class="topbar-left">
    <div class="brand">
      <span class="brand-dot"></span>
      <span class="brand-name">Send</span>
    </div>
    <div class="divider"></div>
    <a href="{{.ViewURL}}" class="back-link" target="_blank">View document &rarr;</a>
  </div>
</header>

<main class="content">
  <div class="header">
    <h1>{{.Title}}</h1>
    <div class="header-meta">
      <span>Created {{.CreatedDate}}</span>
      <span>&middot;</span>
      <span>{{.TotalViews}} view{{if ne .TotalViews 1}}s{{end}}</span>
    </div>
    <div class="chips">
      <span class="chip {{if .AllowDownload}}chip-on{{else}}chip-off{{end}}">
        {{if .AllowDownload}}&#10003;{{else}}&#10005;{{end}} Download
      </span>
      <span class="chip {{if .AllowPrint}}chip-on{{else}}chip-off{{end}}">
        {{if .AllowPrint}}&#10003;{{else}}&#10005;{{end}} Print
      </span>
    </div>
    <div class="link-row">
      <div class="link-box" id="linkText">{{.ViewURL}}</div>
      <button class="btn btn-primary" id="copyBtn">Copy link</button>
    </div>
  </div>

  <div class="stat-grid">
    <div class="stat-card">
      <div class="label">Total Views</div>
      <div class="value">{{.TotalViews}}</div>
      <div class="sub">All time</div>
    </div>
    <div class="stat-card">
      <div class="label">Unique Viewers</div>
      <div class="value">{{.UniqueViewers}}</div>
      <div class="sub">By IP address</div>
    </div>
    <div class="stat-card">
      <div class="label">Last Viewed</div>
      <div class="value" style="font-size: 1.4rem;">{{.LastViewedAgo}}</div>
      <div class="sub">{{.LastViewedAt}}</div>
    </div>
  </div>

  <div class="table-section">
    <div class="table-header">
      <h2>View History</h2>
      <span class="count">Showing {{len .Rows}} of {{.TotalViews}}</span>
    </div>
    <div class="table-wrap">
      {{if .Rows}}
      <table>
        <thead>
          <tr>
            <th>Time</th>
            <th>IP</th>
            <th>Browser</th>
            <th>Source</th>
          </tr>
        </thead>
        <tbody>
          {{range .Rows}}
          <tr>
            <td>{{.Time}}</td>
            <td><code>{{.MaskedIP}}</code></td>
            <td>{{.Browser}}</td>
            <td>{{.Source}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      {{else}}
      <div class="empty">
        <p>No views yet. Share the link to start tracking.</p>
      </div>
      {{end}}
    </div>
  </div>
</main>

<div class="copied-toast" id="toast">Copied to clipboard</div>

<script>
  document.getElementById('copyBtn').addEventListener('click', async () => {
    const url = document.getElementById('linkText').textContent;
    await navigator.clipboard.writeText(url);
    const toast = document.getElementById('toast');
    toast.classList.add('show');
    setTimeout(() => toast.classList.remove('show'), 2000);
  });
</script>

</body>
</html>`))
