package review

import (
	"math"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
)

// TimeScore maps a clock time onto [0,100] against an ideal and a maximum
// time, all in minutes since midnight: at or before the ideal is a perfect
// 100, at or past the maximum is 0, and the stretch in between falls off
// linearly.
//
// A task with maxMinutes <= idealMinutes has no slope to interpolate on, so
// the curve degenerates to the two flat segments.
func TimeScore(timeMinutes, idealMinutes, maxMinutes int) int {
	switch {
	case timeMinutes <= idealMinutes:
		return 100
	case timeMinutes >= maxMinutes:
		return 0
	}
	score := 100 - float64(timeMinutes-idealMinutes)/float64(maxMinutes-idealMinutes)*100
	return int(math.Round(score))
}

// TimeScores scores each clock string against the ideal and max times.
func TimeScores(clocks []string, idealClock, maxClock string) ([]int, error) {
	ideal, err := entry.ClockToMinutes(idealClock)
	if err != nil {
		return nil, err
	}
	max, err := entry.ClockToMinutes(maxClock)
	if err != nil {
		return nil, err
	}

	scores := make([]int, len(clocks))
	for i, c := range clocks {
		m, err := entry.ClockToMinutes(c)
		if err != nil {
			return nil, err
		}
		scores[i] = TimeScore(m, ideal, max)
	}
	return scores, nil
}

// AverageClock returns the mean of the clock strings as an HH:MM string, or
// "00:00" for an empty slice.
func AverageClock(clocks []string) (string, error) {
	if len(clocks) == 0 {
		return "00:00", nil
	}
	total := 0
	for _, c := range clocks {
		m, err := entry.ClockToMinutes(c)
		if err != nil {
			return "", err
		}
		total += m
	}
	avg := math.Round(float64(total) / float64(len(clocks)))
	return entry.MinutesToClock(int(avg)), nil
}

// EarliestClock returns the earliest of the clock strings, or "00:00" for an
// empty slice.
func EarliestClock(clocks []string) (string, error) {
	return extremeClock(clocks, func(a, b int) bool { return a < b })
}

// LatestClock returns the latest of the clock strings, or "00:00" for an
// empty slice.
func LatestClock(clocks []string) (string, error) {
	return extremeClock(clocks, func(a, b int) bool { return a > b })
}

func extremeClock(clocks []string, better func(a, b int) bool) (string, error) {
	if len(clocks) == 0 {
		return "00:00", nil
	}
	best, err := entry.ClockToMinutes(clocks[0])
	if err != nil {
		return "", err
	}
	for _, c := range clocks[1:] {
		m, err := entry.ClockToMinutes(c)
		if err != nil {
			return "", err
		}
		if better(m, best) {
			best = m
		}
	}
	return entry.MinutesToClock(best), nil
}

// round1 rounds to one decimal place. Review scores carry a single decimal.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
