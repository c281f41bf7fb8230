package describe

import (
	"fmt"
	"time"
)

// FormatElapsed renders a wall-clock duration as seconds, minutes+seconds,
// or hours+minutes+seconds depending on magnitude.
func FormatElapsed(elapsed time.Duration) string {
	seconds := elapsed.Seconds()

	switch {
	case seconds < 60:
		return fmt.Sprintf("%.2f seconds", seconds)
	case seconds < 3600:
		minutes := int(seconds) / 60
		remainder := int(seconds) % 60
		return fmt.Sprintf("%d minutes %d seconds", minutes, remainder)
	default:
		hours := int(seconds) / 3600
		minutes := (int(seconds) % 3600) / 60
		remainder := int(seconds) % 60
		hourWord := "hours"
		if hours == 1 {
			hourWord = "hour"
		}
		return fmt.Sprintf("%d %s %d minutes %d seconds", hours, hourWord, minutes, remainder)
	}
}
