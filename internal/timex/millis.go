package timex

import "time"

// ToMillis converts t to unix milliseconds. The zero time maps to 0.
func ToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis is the inverse of ToMillis; 0 maps to the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Truncate normalizes t to UTC with millisecond precision, the resolution
// every store in the system can represent losslessly.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Bump returns a timestamp strictly after prev and not before now.
func Bump(now, prev time.Time) time.Time {
	now = Truncate(now)
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}
