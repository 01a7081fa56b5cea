package domain

import "time"

// CalendarConflict is an ephemeral record of an existing calendar
// commitment overlapping a proposed booking window. Never persisted.
type CalendarConflict struct {
	Title string
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the conflict intersects [start, end).
// Touching boundaries do not count as an overlap.
func (c *CalendarConflict) Overlaps(start, end time.Time) bool {
	return c.Start.Before(end) && c.End.After(start)
}
