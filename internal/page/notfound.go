package page

// NotFound is the styled page served when no document matches a public slug.
const NotFound = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Document not found</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: system-ui, sans-serif;
    background: #FAFAF8;
    color: #1a1a1a;
    display: flex;
    align-items: center;
    justify-content: center;
    min-height: 100vh;
  }
  .gone { text-align: center; }
  .gone h1 { font-weight: 400; font-size: 2.4rem; margin-bottom: 0.5rem; }
  .gone p { color: #888; font-size: 0.95rem; }
</style>
</head>
<body>
  <div class="gone">
    <h1>This document doesn't exist</h1>
    <p>The link may have expired or been removed.</p>
  </div>
</body>
</html>`
