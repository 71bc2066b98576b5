package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoEntries is returned when a review window contains no entries.
var ErrNoEntries = errors.New("entries do not exist")

// Cache stores computed review reports keyed by task and window. Implemented
// by the redis cache; a nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

type Service interface {
	WeeklyReview(ctx context.Context, userID, taskID uuid.UUID, date time.Time) (*WeeklyReviewData, error)
	MonthlyReview(ctx context.Context, userID, taskID uuid.UUID, date time.Time) (*PeriodReviewData, error)
	CustomReview(ctx context.Context, userID, taskID uuid.UUID, start, end time.Time) (*PeriodReviewData, error)
	// OverallReview reports over the task's whole lifetime, from its starting
	// date through its ending date.
	OverallReview(ctx context.Context, userID, taskID uuid.UUID) (*PeriodReviewData, error)
}

type service struct {
	entries entry.Repository
	tasks   task.Repository
	cache   Cache
	logger  *zap.Logger
}

func NewService(entries entry.Repository, tasks task.Repository, cache Cache, logger *zap.Logger) Service {
	return &service{
		entries: entries,
		tasks:   tasks,
		cache:   cache,
		logger:  logger,
	}
}

func (s *service) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, task.ErrNotTaskOwner
	}
	return t, nil
}

// stats holds the type-specific aggregation results shared by the weekly and
// period report shapes.
type stats struct {
	breakDayCount   int
	workDayCount    int
	average         interface{}
	lowest          interface{}
	highest         interface{}
	cumulative      interface{}
	idealCumulative interface{}
	timeScores      []int
	score           interface{}
}

// aggregate partitions the window's entries into break and work days and
// computes the per-type statistics. When every entry in the window is a
// break day there is nothing to measure against, so average and score come
// back null instead of dividing by zero.
func (s *service) aggregate(t *task.Task, entries []entry.Entry) (*stats, error) {
	st := &stats{}

	var workDays []entry.Entry
	for _, e := range entries {
		if e.IsBreakDay {
			st.breakDayCount++
		} else {
			workDays = append(workDays, e)
		}
	}
	st.workDayCount = len(workDays)

	switch t.Type {
	case task.TypeBoolean:
		successes := 0
		for _, e := range workDays {
			v, err := e.BoolValue()
			if err != nil {
				return nil, err
			}
			if v {
				successes++
			}
		}
		st.cumulative = successes
		st.idealCumulative = st.workDayCount
		if st.workDayCount > 0 {
			st.score = round1(float64(successes) / float64(st.workDayCount) * 100)
		}

	case task.TypeNumber, task.TypeMinutes:
		ideal, err := t.IdealNumber()
		if err != nil {
			return nil, err
		}
		var sum, lowest, highest float64
		for i, e := range workDays {
			v, err := e.NumberValue()
			if err != nil {
				return nil, err
			}
			sum += v
			if i == 0 || v < lowest {
				lowest = v
			}
			if i == 0 || v > highest {
				highest = v
			}
		}
		st.cumulative = sum
		if st.workDayCount > 0 {
			st.average = sum / float64(st.workDayCount)
			st.lowest = lowest
			st.highest = highest
			idealCumulative := ideal * float64(st.workDayCount)
			st.idealCumulative = idealCumulative
			if idealCumulative != 0 {
				st.score = round1(sum / idealCumulative * 100)
			}
		}

	case task.TypeTime:
		idealClock, err := t.IdealClock()
		if err != nil {
			return nil, err
		}
		if t.MaxTime == nil {
			return nil, task.ErrMaxTimeRequired
		}
		clocks := make([]string, 0, len(workDays))
		for _, e := range workDays {
			c, err := e.ClockValue()
			if err != nil {
				return nil, err
			}
			clocks = append(clocks, c)
		}
		if st.workDayCount > 0 {
			if st.average, err = AverageClock(clocks); err != nil {
				return nil, err
			}
			if st.lowest, err = EarliestClock(clocks); err != nil {
				return nil, err
			}
			if st.highest, err = LatestClock(clocks); err != nil {
				return nil, err
			}
			scores, err := TimeScores(clocks, idealClock, *t.MaxTime)
			if err != nil {
				return nil, err
			}
			st.timeScores = scores
			total := 0
			for _, sc := range scores {
				total += sc
			}
			st.score = round1(float64(total) / float64(100*st.workDayCount) * 100)
		}

	default:
		return nil, fmt.Errorf("%w: %q", task.ErrInvalidTaskType, t.Type)
	}

	return st, nil
}

func (s *service) windowEntries(ctx context.Context, taskID uuid.UUID, w Window) ([]entry.Entry, error) {
	entries, err := s.entries.FindRange(ctx, taskID, w.FirstDay, w.LastDay)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}

func (s *service) WeeklyReview(ctx context.Context, userID, taskID uuid.UUID, date time.Time) (*WeeklyReviewData, error) {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	w := WeekBoundaries(date)
	key := cacheKey(taskID, "weekly", w)
	var cached WeeklyReviewData
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.windowEntries(ctx, taskID, w)
	if err != nil {
		return nil, err
	}
	st, err := s.aggregate(t, entries)
	if err != nil {
		return nil, err
	}

	data := &WeeklyReviewData{
		FirstDayOfWeek:         w.FirstDay,
		Entries:                entries,
		BreakDaysEntriesLength: st.breakDayCount,
		BreakDays:              t.BreakDays,
		WeeklyAverage:          st.average,
		LowestValue:            st.lowest,
		HighestValue:           st.highest,
		WorkDayEntriesLength:   st.workDayCount,
		WeeklyCumulative:       st.cumulative,
		IdealCumulative:        st.idealCumulative,
		IdealValue:             t.IdealValueRaw(),
		Unit:                   t.Unit,
		TimeScores:             st.timeScores,
		Score:                  st.score,
	}
	s.cacheSet(ctx, key, data)
	return data, nil
}

func (s *service) MonthlyReview(ctx context.Context, userID, taskID uuid.UUID, date time.Time) (*PeriodReviewData, error) {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return s.periodReview(ctx, t, MonthBoundaries(date), "monthly")
}

func (s *service) CustomReview(ctx context.Context, userID, taskID uuid.UUID, start, end time.Time) (*PeriodReviewData, error) {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	w := Window{FirstDay: task.DateOnly(start), LastDay: task.DateOnly(end)}
	return s.periodReview(ctx, t, w, "custom")
}

func (s *service) OverallReview(ctx context.Context, userID, taskID uuid.UUID) (*PeriodReviewData, error) {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	w := Window{FirstDay: t.StartingDate, LastDay: t.EndingDate}
	return s.periodReview(ctx, t, w, "overall")
}

func (s *service) periodReview(ctx context.Context, t *task.Task, w Window, granularity string) (*PeriodReviewData, error) {
	key := cacheKey(t.ID, granularity, w)
	var cached PeriodReviewData
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.windowEntries(ctx, t.ID, w)
	if err != nil {
		return nil, err
	}
	st, err := s.aggregate(t, entries)
	if err != nil {
		return nil, err
	}

	data := &PeriodReviewData{
		FirstDay:               w.FirstDay,
		LastDay:                w.LastDay,
		Entries:                entries,
		BreakDaysEntriesLength: st.breakDayCount,
		BreakDays:              t.BreakDays,
		AverageValue:           st.average,
		LowestValue:            st.lowest,
		HighestValue:           st.highest,
		WorkDayEntriesLength:   st.workDayCount,
		Cumulative:             st.cumulative,
		IdealCumulative:        st.idealCumulative,
		IdealValue:             t.IdealValueRaw(),
		Unit:                   t.Unit,
		TimeScores:             st.timeScores,
		Score:                  st.score,
	}
	s.cacheSet(ctx, key, data)
	return data, nil
}

func cacheKey(taskID uuid.UUID, granularity string, w Window) string {
	return fmt.Sprintf("review:%s:%s:%s:%s",
		taskID, granularity,
		w.FirstDay.Format("2006-01-02"),
		w.LastDay.Format("2006-01-02"))
}

func (s *service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("review cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("review cache write failed", zap.String("key", key), zap.Error(err))
	}
}
