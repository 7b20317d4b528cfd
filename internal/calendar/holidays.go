package calendar

import "time"

// Fixed-date public holidays.
var fixedHolidays = []struct {
	label string
	month time.Month
	day   int
}{
	{"New Year's Day", time.January, 1},
	{"Labour Day", time.May, 1},
	{"Constitution Day", time.May, 17},
	{"Christmas Day", time.December, 25},
	{"Boxing Day", time.December, 26},
}

// Easter-relative public holidays, as day offsets from Easter Sunday.
var easterHolidays = []struct {
	label  string
	offset int
}{
	{"Maundy Thursday", -3},
	{"Good Friday", -2},
	{"Easter Sunday", 0},
	{"Easter Monday", 1},
	{"Ascension Day", 39},
	{"Whit Sunday", 49},
	{"Whit Monday", 50},
}

// Holidays returns every public holiday of the given year, keyed by
// DateKey. Markers are appended in table order; coinciding dates keep
// every label (no deduplication).
func Holidays(year int) map[string][]Marker {
	out := make(map[string][]Marker, len(fixedHolidays)+len(easterHolidays))

	for _, h := range fixedHolidays {
		key := time.Date(year, h.month, h.day, 0, 0, 0, 0, time.Local).Format(DateKey)
		out[key] = append(out[key], Marker{Label: h.label, Kind: KindHoliday})
	}

	easter := Easter(year)
	for _, h := range easterHolidays {
		key := easter.AddDate(0, 0, h.offset).Format(DateKey)
		out[key] = append(out[key], Marker{Label: h.label, Kind: KindHoliday})
	}

	return out
}
