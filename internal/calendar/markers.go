package calendar

import "time"

// DateKey is the canonical format for calendar-date map keys.
const DateKey = "2006-01-02"

// Kind distinguishes the two marker sources.
type Kind string

const (
	KindHoliday  Kind = "holiday"
	KindVacation Kind = "vacation"
)

// Marker annotates a calendar date. Markers are values without identity;
// one date may carry several, possibly with repeated labels.
type Marker struct {
	Label string
	Kind  Kind
}

// MarkersForMonth merges holiday and vacation markers for every day of the
// month containing ref, keyed by DateKey.
func MarkersForMonth(ref time.Time) map[string][]Marker {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	holidays := Holidays(first.Year())

	index := make(map[string][]Marker)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateKey)
		var markers []Marker
		markers = append(markers, holidays[key]...)
		markers = append(markers, Vacations(d)...)
		if len(markers) > 0 {
			index[key] = markers
		}
	}
	return index
}
