package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidays_FixedDates(t *testing.T) {
	h := Holidays(2024)

	fixed := map[string]string{
		"2024-01-01": "New Year's Day",
		"2024-05-01": "Labour Day",
		"2024-05-17": "Constitution Day",
		"2024-12-25": "Christmas Day",
		"2024-12-26": "Boxing Day",
	}
	for key, label := range fixed {
		require.NotEmpty(t, h[key], "expected holiday on %s", key)
		assert.Equal(t, label, h[key][0].Label)
		assert.Equal(t, KindHoliday, h[key][0].Kind)
	}
}

func TestHolidays_EasterRelative2024(t *testing.T) {
	// Easter Sunday 2024 is March 31.
	h := Holidays(2024)

	movable := map[string]string{
		"2024-03-28": "Maundy Thursday",
		"2024-03-29": "Good Friday",
		"2024-03-31": "Easter Sunday",
		"2024-04-01": "Easter Monday",
		"2024-05-09": "Ascension Day",
		"2024-05-19": "Whit Sunday",
		"2024-05-20": "Whit Monday",
	}
	for key, label := range movable {
		require.NotEmpty(t, h[key], "expected holiday on %s", key)
		assert.Equal(t, label, h[key][0].Label)
	}
}

func TestHolidays_TwelveMarkersPerYear(t *testing.T) {
	for year := 2000; year <= 2050; year++ {
		total := 0
		for _, markers := range Holidays(year) {
			total += len(markers)
		}
		assert.Equal(t, 12, total, "year %d", year)
	}
}

func TestHolidays_CoincidingDatesKeepAllLabels(t *testing.T) {
	// Ascension Day fell on May 17 in 2012; both labels must survive.
	h := Holidays(2012)

	labels := make([]string, 0, 2)
	for _, m := range h["2012-05-17"] {
		labels = append(labels, m.Label)
	}
	assert.ElementsMatch(t, []string{"Constitution Day", "Ascension Day"}, labels)
}

func TestHolidays_DistinctEasterOffsets(t *testing.T) {
	easter := Easter(2026)
	h := Holidays(2026)

	offsets := map[int]bool{}
	for _, off := range []int{-3, -2, 0, 1, 39, 49, 50} {
		key := easter.AddDate(0, 0, off).Format(DateKey)
		require.NotEmpty(t, h[key], "offset %d", off)
		assert.False(t, offsets[off])
		offsets[off] = true
	}
	assert.Len(t, offsets, 7)
}

func TestHolidays_LocalDates(t *testing.T) {
	key := time.Date(2025, time.May, 17, 0, 0, 0, 0, time.Local).Format(DateKey)
	assert.Equal(t, "2025-05-17", key)
}
