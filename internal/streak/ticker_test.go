package streak

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTick(t *testing.T) {
	clock := &fakeClock{t: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := Tracker{Interval: 100 * time.Millisecond, now: clock.now}
	steps := []struct {
		key     string
		advance time.Duration
		want    int
	}{
		{key: "a", want: 1},
		{key: "a", advance: 50 * time.Millisecond, want: 2},
		{key: "a", advance: 100 * time.Millisecond, want: 3},
		{key: "b", advance: 10 * time.Millisecond, want: 1},
		{key: "b", advance: 101 * time.Millisecond, want: 1},
		{key: "b", advance: 1 * time.Millisecond, want: 2},
	}
	for i, s := range steps {
		clock.advance(s.advance)
		if n := tr.Tick(s.key); n != s.want {
			t.Errorf("step %d: Tick(%q) = %d, want %d", i, s.key, n, s.want)
		}
	}
	tr.Reset()
	if tr.Repeat("b") {
		t.Error("after Reset, first tick reported as a repeat")
	}
	if !tr.Repeat("b") {
		t.Error("second tick within interval not reported as a repeat")
	}
}
