package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scaleWithMax(max float64) levelScale {
	return newLevelScale([]DayBucket{{TotalHours: max}})
}

func TestLevelScale_Thresholds(t *testing.T) {
	s := scaleWithMax(10)

	cases := []struct {
		hours float64
		want  int
	}{
		{-1, 0},
		{0, 0},
		{0.5, 1},  // 0.05
		{1.9, 1},  // 0.19
		{2, 2},    // 0.20
		{3.9, 2},  // 0.39
		{4, 3},    // 0.40
		{5, 3},    // 0.50
		{6, 4},    // 0.60
		{7.9, 4},  // 0.79
		{8, 5},    // 0.80
		{10, 5},   // 1.00
		{12.5, 5}, // above the observed max still clamps to 5
	}
	for _, c := range cases {
		assert.Equal(t, c.want, s.level(c.hours), "hours=%v", c.hours)
	}
}

func TestLevelScale_HalfOfMaxIsLevelThree(t *testing.T) {
	for _, max := range []float64{1, 2.5, 8, 24, 100} {
		s := scaleWithMax(max)
		assert.Equal(t, 3, s.level(max/2), "max=%v", max)
	}
}

func TestLevelScale_AllZeroMonth(t *testing.T) {
	s := newLevelScale([]DayBucket{{TotalHours: 0}, {TotalHours: 0}})

	// monthMax floors at 1, so the scale stays defined.
	assert.Equal(t, 0, s.level(0))
	assert.Equal(t, 3, s.level(0.5))
	assert.Equal(t, 5, s.level(1))
}

func TestLevelScale_SubHourMax(t *testing.T) {
	// A month whose busiest day is under one hour still scales against 1.
	s := scaleWithMax(0.5)
	assert.Equal(t, 3, s.level(0.5))
}

func TestLevelScale_Monotonic(t *testing.T) {
	s := scaleWithMax(7.5)
	prev := 0
	for h := 0.0; h <= 7.5; h += 0.1 {
		l := s.level(h)
		assert.GreaterOrEqual(t, l, prev, "hours=%v", h)
		prev = l
	}
}
