// Package streak tracks repeated occurrences of an event within some interval.
package streak

import "time"

// Tracker keeps track of the number of times the same key has been seen within a time
// interval T of each other. If a different key arrives, or the same one arrives longer
// than T after its last occurrence, the count is reset to 1.
//
// To initialize a Tracker, set its Interval field to that interval T.
type Tracker struct {
	ConsecutiveTicks int           // The number of consecutive events so far.
	Interval         time.Duration // The maximum time difference for two events to be considered consecutive.

	lastKey      string
	lastTickTime time.Time
	now          func() time.Time
}

// Tick records one occurrence of key and returns the current tick count.
func (t *Tracker) Tick(key string) int {
	now := time.Now()
	if t.now != nil {
		now = t.now()
	}
	if t.lastTickTime.IsZero() || key != t.lastKey || now.Sub(t.lastTickTime) > t.Interval {
		t.ConsecutiveTicks = 1
	} else {
		t.ConsecutiveTicks++
	}
	t.lastKey = key
	t.lastTickTime = now
	return t.ConsecutiveTicks
}

// Repeat records one occurrence of key and reports whether it continues a streak.
func (t *Tracker) Repeat(key string) bool { return t.Tick(key) > 1 }

// Reset forgets the current streak.
func (t *Tracker) Reset() {
	t.ConsecutiveTicks = 0
	t.lastKey = ""
	t.lastTickTime = time.Time{}
}
