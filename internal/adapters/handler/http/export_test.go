package http

import "time"

// SetStatsClock pins the clock used for the default stats range.
func SetStatsClock(h *StatsHandler, now func() time.Time) {
	h.now = now
}
