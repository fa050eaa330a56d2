package page

import (
	"bytes"
	"testing"
	"time"

	"github.com/kylewill/send-worker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4", "10.20.30.40", "10.20.***"},
		{"ipv4 small octets", "1.1.1.1", "1.1.***"},
		{"non-ipv4 length 7 keeps first 4", "abcdefg", "abcd***"},
		{"ipv6-ish keeps first half rounded up", "::1", "::***"},
		{"unknown passes through", "unknown", "unknown"},
		{"empty is unknown", "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskIP(tt.in))
		})
	}
}

func TestBrowserName(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/119.0", "Firefox"},
		{"edge beats chrome", "Mozilla/5.0 AppleWebKit/537.36 Chrome/119.0 Safari/537.36 Edg/119.0", "Edge"},
		{"chrome beats safari", "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0 Safari/537.36", "Chrome"},
		{"safari", "Mozilla/5.0 (Macintosh) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15", "Safari"},
		{"curl", "curl/8.4.0", "curl"},
		{"other", "Wget/1.21", "Other"},
		{"empty", "", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BrowserName(tt.ua))
		})
	}
}

func TestRefererHost(t *testing.T) {
	assert.Equal(t, "example.com", RefererHost("https://example.com/some/page?q=1"))
	assert.Equal(t, "Direct", RefererHost(""))
	assert.Equal(t, "Direct", RefererHost("not a url"))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
		{"months", now.Add(-45 * 24 * time.Hour), "1mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}

func TestStatsDataFrom(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	doc := &model.Document{
		Title:         "Pitch Deck",
		AllowDownload: true,
		CreatedAt:     time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	views := []model.View{
		{ViewedAt: now.Add(-time.Minute * 10), IPAddress: "1.1.1.1", UserAgent: "curl/8.0", Referer: ""},
		{ViewedAt: now.Add(-time.Hour), IPAddress: "1.1.1.1", UserAgent: "Mozilla Firefox/119.0", Referer: "https://news.example.org/post"},
		{ViewedAt: now.Add(-2 * time.Hour), IPAddress: "2.2.2.2", UserAgent: "", Referer: ""},
	}

	data := StatsDataFrom(doc, views, 3, 2, "https://send.example.com/view/x", now)

	assert.Equal(t, 3, data.TotalViews)
	assert.Equal(t, 2, data.UniqueViewers)
	assert.Equal(t, "10m ago", data.LastViewedAgo)
	assert.Equal(t, "Aug 1, 2026", data.CreatedDate)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "1.1.***", data.Rows[0].MaskedIP)
	assert.Equal(t, "curl", data.Rows[0].Browser)
	assert.Equal(t, "Direct", data.Rows[0].Source)
	assert.Equal(t, "news.example.org", data.Rows[1].Source)
	assert.Equal(t, "Unknown", data.Rows[2].Browser)
}

func TestStatsDataFromNoViews(t *testing.T) {
	doc := &model.Document{Title: "Deck", CreatedAt: time.Now()}
	data := StatsDataFrom(doc, nil, 0, 0, "https://x/view/y", time.Now())
	assert.Equal(t, "Never", data.LastViewedAgo)
	assert.Empty(t, data.Rows)
}

func TestRenderViewerEscapesTitle(t *testing.T) {
	var buf bytes.Buffer
	err := RenderViewer(&buf, ViewerData{
		Title:      `<script>alert("xss")</script>`,
		FileURL:    "https://send.example.com/api/file/abc123def456",
		TrackURL:   "https://send.example.com/api/track",
		DocumentID: "abc123def456",
		ViewURL:    "https://send.example.com/view/deck",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "abc123def456")
}

func TestRenderViewerPrintSuppression(t *testing.T) {
	render := func(allowPrint bool) string {
		var buf bytes.Buffer
		require.NoError(t, RenderViewer(&buf, ViewerData{Title: "Deck", AllowPrint: allowPrint}))
		return buf.String()
	}

	assert.Contains(t, render(false), "@media print")
	assert.NotContains(t, render(true), "@media print")
}

func TestRenderViewerDownloadButton(t *testing.T) {
	render := func(allowDownload bool) string {
		var buf bytes.Buffer
		require.NoError(t, RenderViewer(&buf, ViewerData{Title: "Deck", AllowDownload: allowDownload}))
		return buf.String()
	}

	assert.Contains(t, render(true), `id="downloadBtn"`)
	assert.NotContains(t, render(false), `id="downloadBtn"`)
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	data := StatsData{
		Title:         "Deck & Friends",
		CreatedDate:   "Aug 1, 2026",
		TotalViews:    3,
		UniqueViewers: 2,
		LastViewedAgo: "10m ago",
		LastViewedAt:  "8/30/2026, 11:50:00 AM",
		ViewURL:       "https://send.example.com/view/deck",
		Rows: []ViewRow{
			{Time: "Aug 30 at 11:50 AM", MaskedIP: "1.1.***", Browser: "Chrome", Source: "Direct"},
		},
	}
	require.NoError(t, RenderStats(&buf, data))

	html := buf.String()
	assert.Contains(t, html, "Deck &amp; Friends")
	assert.Contains(t, html, "Showing 1 of 3")
	assert.Contains(t, html, "1.1.***")
}

func TestRenderStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderStats(&buf, StatsData{Title: "Deck", LastViewedAgo: "Never"}))
	assert.Contains(t, buf.String(), "No views yet")
}
