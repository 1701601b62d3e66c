package reflector

import (
	"fmt"
	"time"
)

// FormatTime renders d as HH:MM:SS. Hours are not wrapped and negative durations render as zero.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
