package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeScore(t *testing.T) {
	const (
		nineAM = 9 * 60
		tenAM  = 10 * 60
	)

	tests := []struct {
		name     string
		time     int
		ideal    int
		max      int
		expected int
	}{
		{"halfway between ideal and max", nineAM + 30, nineAM, tenAM, 50},
		{"before ideal is perfect", 8*60 + 30, nineAM, tenAM, 100},
		{"past max is zero", tenAM + 30, nineAM, tenAM, 0},
		{"exactly at ideal", nineAM, nineAM, tenAM, 100},
		{"exactly at max", tenAM, nineAM, tenAM, 0},
		{"quarter past ideal", nineAM + 15, nineAM, tenAM, 75},
		{"rounding on uneven slope", nineAM + 20, nineAM, tenAM, 67},
		{"max equals ideal, at ideal", nineAM, nineAM, nineAM, 100},
		{"max equals ideal, past ideal", nineAM + 1, nineAM, nineAM, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeScore(tt.time, tt.ideal, tt.max))
		})
	}
}

func TestTimeScores(t *testing.T) {
	scores, err := TimeScores([]string{"09:30", "08:30", "10:30"}, "09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, []int{50, 100, 0}, scores)

	_, err = TimeScores([]string{"9:3x"}, "09:00", "10:00")
	assert.Error(t, err)
}

func TestAverageClock(t *testing.T) {
	tests := []struct {
		name     string
		clocks   []string
		expected string
	}{
		{"empty defaults to midnight", nil, "00:00"},
		{"single value", []string{"07:45"}, "07:45"},
		{"exact mean", []string{"08:00", "10:00"}, "09:00"},
		{"mean rounds to nearest minute", []string{"08:00", "08:01", "08:01"}, "08:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, err := AverageClock(tt.clocks)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, avg)
		})
	}
}

func TestEarliestAndLatestClock(t *testing.T) {
	clocks := []string{"09:15", "06:30", "23:59", "12:00"}

	earliest, err := EarliestClock(clocks)
	require.NoError(t, err)
	assert.Equal(t, "06:30", earliest)

	latest, err := LatestClock(clocks)
	require.NoError(t, err)
	assert.Equal(t, "23:59", latest)

	earliest, err = EarliestClock(nil)
	require.NoError(t, err)
	assert.Equal(t, "00:00", earliest)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 80.0, round1(80.0))
	assert.Equal(t, 66.7, round1(66.666666))
	assert.Equal(t, 33.3, round1(33.333333))
	assert.Equal(t, 100.0, round1(99.99))
}
