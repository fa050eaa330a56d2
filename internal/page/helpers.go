package page

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// MaskIP partially hides a viewer address for display: IPv4 keeps the first
// two octets (`10.20.30.40` → `10.20.***`), anything else keeps the first
// half of the string rounded up. Missing addresses stay "unknown".
func MaskIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	parts := strings.Split(ip, ".")
	if len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".***"
	}
	keep := (len(ip) + 1) / 2
	return ip[:keep] + "***"
}

// BrowserName coarsely classifies a user agent by substring. Precedence
// matters: Chrome ships "Safari" in its UA and Edge ships "Chrome".
func BrowserName(ua string) string {
	switch {
	case ua == "":
		return "Unknown"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Edg/"):
		return "Edge"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	case strings.Contains(ua, "curl"):
		return "curl"
	default:
		return "Other"
	}
}

// RefererHost extracts the hostname of a referer URL; an absent or
// unparseable referer renders as "Direct".
func RefererHost(referer string) string {
	if referer == "" {
		return "Direct"
	}
	u, err := url.Parse(referer)
	if err != nil || u.Hostname() == "" {
		return "Direct"
	}
	return u.Hostname()
}

// RelativeTime renders how long ago t was, coarsening with distance.
func RelativeTime(t, now time.Time) string {
	mins := int(now.Sub(t).Minutes())
	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case mins < 24*60:
		return fmt.Sprintf("%dh ago", mins/60)
	case mins < 30*24*60:
		return fmt.Sprintf("%dd ago", mins/(24*60))
	default:
		return fmt.Sprintf("%dmo ago", mins/(30*24*60))
	}
}

// ViewTime formats an absolute view timestamp for the history table.
func ViewTime(t time.Time) string {
	return t.Format("Jan 2 at 3:04 PM")
}

// CreatedDate formats a document creation date.
func CreatedDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
