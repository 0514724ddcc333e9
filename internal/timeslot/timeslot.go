// Package timeslot is the single source of truth for the service day's
// fixed half-hour windows. Pure, no I/O.
package timeslot

var labels = [...]string{
	"20:00-20:30",
	"20:30-21:00",
	"21:00-21:30",
	"21:30-22:00",
	"22:00-22:30",
	"22:30-23:00",
}

func Count() int { return len(labels) }

func Valid(i int) bool { return i >= 0 && i < len(labels) }

// Label returns the window label for a slot index, or "" when the
// index is out of range.
func Label(i int) string {
	if !Valid(i) {
		return ""
	}
	return labels[i]
}

func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}
