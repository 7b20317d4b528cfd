package activity

// levelScale maps a day's hours to a 0..5 intensity level relative to the
// busiest day of one month. The scale is recomputed per month, so the same
// absolute value can land on different levels in different months.
type levelScale struct {
	monthMax float64
}

func newLevelScale(days []DayBucket) levelScale {
	var max float64
	for _, d := range days {
		if d.TotalHours > max {
			max = d.TotalHours
		}
	}
	// Floor at 1 so an all-zero month cannot divide by zero.
	if max < 1 {
		max = 1
	}
	return levelScale{monthMax: max}
}

func (s levelScale) level(hours float64) int {
	if hours <= 0 {
		return 0
	}
	ratio := hours / s.monthMax
	switch {
	case ratio < 0.2:
		return 1
	case ratio < 0.4:
		return 2
	case ratio < 0.6:
		return 3
	case ratio < 0.8:
		return 4
	default:
		return 5
	}
}
