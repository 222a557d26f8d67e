package view

import "fmt"

// FileSize renders a byte count the way the backend reports it,
// one decimal place with the largest unit below 1024.
func FileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}
