package calendar

import "time"

// Vacations returns the school-vacation markers that apply to d. Rules are
// evaluated independently; every match is returned.
func Vacations(d time.Time) []Marker {
	var out []Marker

	_, week := d.ISOWeek()
	weekday := d.Weekday()
	onWeekday := weekday >= time.Monday && weekday <= time.Friday

	if (week == 8 || week == 9) && onWeekday {
		out = append(out, Marker{Label: "Winter break", Kind: KindVacation})
	}
	if week == 40 && onWeekday {
		out = append(out, Marker{Label: "Autumn break", Kind: KindVacation})
	}
	if inSummerBreak(d) {
		out = append(out, Marker{Label: "Summer break", Kind: KindVacation})
	}
	if inChristmasBreak(d) {
		out = append(out, Marker{Label: "Christmas break", Kind: KindVacation})
	}

	return out
}

// inSummerBreak reports whether d falls within June 20 through August 20
// of its own year, inclusive.
func inSummerBreak(d time.Time) bool {
	switch d.Month() {
	case time.June:
		return d.Day() >= 20
	case time.July:
		return true
	case time.August:
		return d.Day() <= 20
	}
	return false
}

// inChristmasBreak covers Dec 24 through Jan 2. The January side is
// checked against d's own year: a date in early January belongs to the
// previous December's break, so it cannot be expressed as a single range
// constructed from one year.
func inChristmasBreak(d time.Time) bool {
	if d.Month() == time.December && d.Day() >= 24 {
		return true
	}
	return d.Month() == time.January && d.Day() <= 2
}
