package game

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS, or H:MM:SS past an hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// inside reports whether (x, y) lies within a w by h window.
func inside(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}
