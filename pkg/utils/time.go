package utils

import (
	"fmt"
	"time"
)

// ISO8601 matches the millisecond precision UTC layout, e.g. 2025-01-02T03:04:05.678Z.
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

func NowISO() string {
	return ISOTimestamp(time.Now())
}

// HumanDuration renders d as e.g. "1h2m3s", dropping sub-second precision.
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Second).String()
}
