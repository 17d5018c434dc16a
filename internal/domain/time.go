package domain

import "time"

// NowMillis returns the current time as epoch milliseconds, the unit used
// for every persisted timestamp.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
