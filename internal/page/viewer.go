package page

import (
	"html/template"
	"io"
)

// ViewerData feeds the public document viewer page.
type ViewerData struct {
	Title         string
	FileURL       string
	TrackURL      string
	DocumentID    string
	ViewURL       string
	AllowDownload bool
	AllowPrint    bool
}

// RenderViewer writes the viewer HTML. Untrusted fields (the title in
// particular) pass through html/template's contextual escaping.
func RenderViewer(w io.Writer, data ViewerData) error {
	return viewerTmpl.Execute(w, data)
}

var viewerTmpl = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} — Send</title>
<script src="https://cdnjs.cloudflare.com/ajax/libs/pdf.js/4.9.155/pdf.min.mjs" type="module"></script>
<style>
  *, *::before, *::after { margin: 0; padding: 0; box-sizing: border-box; }

  :root {
    --bg: #F6F5F1;
    --surface: #FFFFFF;
    --text: #1A1A18;
    --text-muted: #8A8A82;
    --accent: #E23D28;
    --accent-hover: #C4311F;
    --border: #E8E7E3;
    --shadow: 0 1px 3px rgba(0,0,0,0.04), 0 8px 24px rgba(0,0,0,0.06);
  }

  html, body {
    height: 100%;
    overflow: hidden;
    font-family: system-ui, sans-serif;
    background: var(--bg);
    color: var(--text);
  }

  {{if not .AllowPrint}}@media print { body { display: none !important; } }{{end}}

  .shell { display: flex; flex-direction: column; height: 100vh; }

  .topbar {
    display: flex;
    align-items: center;
    justify-content: space-between;
    padding: 0 24px;
    height: 56px;
    background: var(--surface);
    border-bottom: 1px solid var(--border);
    flex-shrink: 0;
    z-index: 10;
  }
  .topbar-left { display: flex; align-items: center; gap: 12px; min-width: 0; }
  .brand { display: flex; align-items: center; gap: 6px; flex-shrink: 0; }
  .brand-dot { width: 8px; height: 8px; border-radius: 50%; background: var(--accent); }
  .brand-name {
    font-size: 0.85rem; font-weight: 600; letter-spacing: 0.04em;
    text-transform: uppercase; color: var(--text-muted);
  }
  .divider { width: 1px; height: 20px; background: var(--border); flex-shrink: 0; }
  .doc-title {
    font-size: 1.1rem; white-space: nowrap; overflow: hidden; text-overflow: ellipsis;
  }
  .topbar-right { display: flex; align-items: center; gap: 8px; flex-shrink: 0; }

  .btn {
    display: inline-flex; align-items: center; gap: 6px; padding: 8px 16px;
    border: none; border-radius: 8px; font-family: inherit; font-size: 0.82rem;
    font-weight: 500; cursor: pointer;
  }
  .btn-ghost { background: transparent; color: var(--text-muted); }
  .btn-ghost:hover { background: var(--border); color: var(--text); }
  .btn-primary { background: var(--accent); color: #fff; }
  .btn-primary:hover { background: var(--accent-hover); }

  .viewport {
    flex: 1; overflow: auto; display: flex; justify-content: center;
    padding: 32px 24px 80px; background: var(--bg);
  }
  .pdf-container { display: flex; flex-direction: column; align-items: center; gap: 16px; }
  .pdf-page {
    background: var(--surface); border-radius: 10px; box-shadow: var(--shadow);
    overflow: hidden; position: relative;
  }
  .pdf-page canvas { display: block; max-width: min(100%, 900px); height: auto !important; }

  .controls {
    position: fixed; bottom: 20px; left: 50%; transform: translateX(-50%);
    display: flex; align-items: center; gap: 2px;
    background: var(--surface); border: 1px solid var(--border);
    border-radius: 12px; padding: 6px 8px;
    box-shadow: 0 4px 20px rgba(0,0,0,0.08); z-index: 20;
  }
  .ctrl-btn {
    width: 36px; height: 36px; display: flex; align-items: center; justify-content: center;
    border: none; background: transparent; border-radius: 8px; cursor: pointer;
    color: var(--text); font-size: 1rem;
  }
  .ctrl-btn:hover { background: var(--border); }
  .ctrl-btn:disabled { opacity: 0.3; cursor: default; }
  .page-indicator {
    padding: 0 12px; font-size: 0.82rem; font-weight: 500; color: var(--text-muted);
    user-select: none; white-space: nowrap;
  }
  .ctrl-divider { width: 1px; height: 20px; background: var(--border); margin: 0 4px; }
  .hidden { display: none !important; }

  .loader {
    display: flex; flex-direction: column; align-items: center; justify-content: center;
    gap: 16px; padding-top: 20vh;
  }
  .loader-text { font-size: 0.82rem; color: var(--text-muted); }
</style>
</head>
<body>

<div class="shell">
  <header class="topbar">
    <div class="topbar-left">
      <div class="brand">
        <span class="brand-dot"></span>
        <span class="brand-name">Send</span>
      </div>
      <div class="divider"></div>
      <span class="doc-title">{{.Title}}</span>
    </div>
    <div class="topbar-right">
      <button class="btn btn-primary" id="copyLinkBtn" title="Copy share link">Copy link</button>
      {{if .AllowDownload}}
      <button class="btn btn-ghost" id="downloadBtn" title="Download PDF">Download</button>
      {{end}}
    </div>
  </header>

  <div class="viewport" id="viewport">
    <div class="loader" id="loader">
      <span class="loader-text">Loading document...</span>
    </div>
    <div class="pdf-container hidden" id="pdfContainer"></div>
  </div>

  <div class="controls hidden" id="controls">
    <button class="ctrl-btn" id="prevPage" title="Previous page" disabled>&lsaquo;</button>
    <span class="page-indicator" id="pageIndicator">1 / 1</span>
    <button class="ctrl-btn" id="nextPage" title="Next page" disabled>&rsaquo;</button>
    <div class="ctrl-divider"></div>
    <button class="ctrl-btn" id="zoomOut" title="Zoom out">&minus;</button>
    <span class="page-indicator" id="zoomLevel">100%</span>
    <button class="ctrl-btn" id="zoomIn" title="Zoom in">&plus;</button>
  </div>
</div>

<script type="module">
  import * as pdfjsLib from 'https://cdnjs.cloudflare.com/ajax/libs/pdf.js/4.9.155/pdf.min.mjs';
  pdfjsLib.GlobalWorkerOptions.workerSrc = 'https://cdnjs.cloudflare.com/ajax/libs/pdf.js/4.9.155/pdf.worker.min.mjs';

  const FILE_URL = '{{.FileURL}}';
  const DOC_ID = '{{.DocumentID}}';
  const TRACK_URL = '{{.TrackURL}}';
  const VIEW_URL = '{{.ViewURL}}';

  // Fire-and-forget view tracking; a failure must never block rendering.
  fetch(TRACK_URL, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ documentId: DOC_ID }),
  }).catch(() => {});

  let pdfDoc = null;
  let currentScale = 1.0;

  async function init() {
    try {
      pdfDoc = await pdfjsLib.getDocument(FILE_URL).promise;
      const totalPages = pdfDoc.numPages;

      document.getElementById('loader').classList.add('hidden');
      document.getElementById('pdfContainer').classList.remove('hidden');
      document.getElementById('controls').classList.remove('hidden');

      document.getElementById('pageIndicator').textContent = totalPages + ' page' + (totalPages > 1 ? 's' : '');

      // Pages render sequentially to bound memory use on the viewing device.
      for (let i = 1; i <= totalPages; i++) {
        await renderPage(i);
      }

      setupZoom();
      if (totalPages > 1) setupPageNav();
    } catch (err) {
      document.getElementById('loader').innerHTML =
        '<span class="loader-text" style="color: var(--accent);">Failed to load document</span>';
      console.error(err);
    }
  }

  async function renderPage(num) {
    const page = await pdfDoc.getPage(num);
    const viewport = page.getViewport({ scale: 1.5 * currentScale });
    const canvas = document.createElement('canvas');
    const ctx = canvas.getContext('2d');
    canvas.width = viewport.width;
    canvas.height = viewport.height;

    const wrapper = document.createElement('div');
    wrapper.className = 'pdf-page';
    wrapper.dataset.pageNum = num;
    wrapper.appendChild(canvas);
    document.getElementById('pdfContainer').appendChild(wrapper);

    await page.render({ canvasContext: ctx, viewport }).promise;
  }

  async function rerenderAll() {
    // Zoom discards everything and re-renders from scratch.
    document.getElementById('pdfContainer').innerHTML = '';
    for (let i = 1; i <= pdfDoc.numPages; i++) {
      await renderPage(i);
    }
  }

  function setupZoom() {
    const zoomLevel = document.getElementById('zoomLevel');

    document.getElementById('zoomIn').addEventListener('click', () => {
      if (currentScale < 2.5) {
        currentScale = Math.min(currentScale + 0.25, 2.5);
        rerenderAll();
        zoomLevel.textContent = Math.round(currentScale * 100) + '%';
      }
    });

    document.getElementById('zoomOut').addEventListener('click', () => {
      if (currentScale > 0.5) {
        currentScale = Math.max(currentScale - 0.25, 0.5);
        rerenderAll();
        zoomLevel.textContent = Math.round(currentScale * 100) + '%';
      }
    });
  }

  function setupPageNav() {
    const prev = document.getElementById('prevPage');
    const next = document.getElementById('nextPage');
    prev.disabled = false;
    next.disabled = false;

    prev.addEventListener('click', () => scrollToAdjacent(-1));
    next.addEventListener('click', () => scrollToAdjacent(1));
  }

  function scrollToAdjacent(dir) {
    const viewport = document.getElementById('viewport');
    const pages = Array.from(document.querySelectorAll('.pdf-page'));
    const top = viewport.getBoundingClientRect().top;
    let current = 0;
    pages.forEach((p, i) => {
      if (p.getBoundingClientRect().top <= top + 5) current = i;
    });
    const target = pages[Math.min(Math.max(current + dir, 0), pages.length - 1)];
    target.scrollIntoView({ behavior: 'smooth', block: 'start' });
  }

  document.getElementById('copyLinkBtn').addEventListener('click', async () => {
    await navigator.clipboard.writeText(VIEW_URL);
    const btn = document.getElementById('copyLinkBtn');
    btn.textContent = 'Copied';
    setTimeout(() => { btn.textContent = 'Copy link'; }, 2000);
  });

  const downloadBtn = document.getElementById('downloadBtn');
  if (downloadBtn) {
    downloadBtn.addEventListener('click', () => {
      window.location.href = FILE_URL;
    });
  }

  init();
</script>

</body>
</html>`))
