// Package reltime formats absolute timestamps as human-relative display
// strings for the notification feed. The string is derived fresh on every
// read; only the absolute timestamp is ever stored.
package reltime

import (
	"fmt"
	"time"
)

// Format returns the relative age of t as seen from now: "Just now",
// "N minutes ago", "N hours ago", or "N days ago".
func Format(t, now time.Time) string {
	mins := int(now.Sub(t).Minutes())
	if mins < 1 {
		return "Just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	}

	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}

	days := hours / 24
	return fmt.Sprintf("%d day%s ago", days, plural(days))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
