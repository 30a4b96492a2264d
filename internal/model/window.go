package model

import "time"

// Window is a closed interval of creation times.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// RecentWindow returns [now-lookBack, now+lookAhead].
func RecentWindow(now time.Time, lookBack, lookAhead time.Duration) Window {
	return Window{From: now.Add(-lookBack), To: now.Add(lookAhead)}
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Valid reports whether From does not come after To.
func (w Window) Valid() bool {
	return !w.From.After(w.To)
}
