package review

import (
	"context"
	"testing"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type mockTaskRepo struct {
	tasks map[uuid.UUID]*task.Task
}

func (m *mockTaskRepo) Create(ctx context.Context, t *task.Task) error { return nil }
func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}
func (m *mockTaskRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	return nil, nil
}
func (m *mockTaskRepo) Update(ctx context.Context, t *task.Task) error  { return nil }
func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error  { return nil }
func (m *mockTaskRepo) SetDateOfLastTaskEntry(ctx context.Context, id uuid.UUID, date *time.Time) error {
	return nil
}
func (m *mockTaskRepo) FindExpired(ctx context.Context, now time.Time) ([]task.Task, error) {
	return nil, nil
}

type mockEntryRepo struct {
	entries []entry.Entry
}

func (m *mockEntryRepo) Create(ctx context.Context, e *entry.Entry) error { return nil }
func (m *mockEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	return nil, entry.ErrEntryNotFound
}
func (m *mockEntryRepo) FindPage(ctx context.Context, taskID uuid.UUID, offset, limit int) ([]entry.Entry, int64, error) {
	return nil, 0, nil
}
func (m *mockEntryRepo) FindRange(ctx context.Context, taskID uuid.UUID, start, end time.Time) ([]entry.Entry, error) {
	var out []entry.Entry
	for _, e := range m.entries {
		if e.TaskID == taskID && !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (m *mockEntryRepo) FindAll(ctx context.Context, taskID uuid.UUID) ([]entry.Entry, error) {
	return m.entries, nil
}
func (m *mockEntryRepo) Update(ctx context.Context, e *entry.Entry) error { return nil }
func (m *mockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error   { return nil }
func (m *mockEntryRepo) DeleteByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *mockEntryRepo) CountByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	return int64(len(m.entries)), nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testEntry(taskID uuid.UUID, tt task.TaskType, date time.Time, value string, isBreak bool) entry.Entry {
	return entry.Entry{
		ID:         uuid.New(),
		TaskID:     taskID,
		Type:       tt,
		Date:       date,
		Value:      datatypes.JSON([]byte(value)),
		IsBreakDay: isBreak,
	}
}

func newTestService(t *task.Task, entries []entry.Entry) Service {
	taskRepo := &mockTaskRepo{tasks: map[uuid.UUID]*task.Task{t.ID: t}}
	entryRepo := &mockEntryRepo{entries: entries}
	return NewService(entryRepo, taskRepo, nil, zap.NewNop())
}

func TestWeeklyReviewBoolean(t *testing.T) {
	userID := uuid.New()
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       task.TypeBoolean,
		IdealValue: datatypes.JSON([]byte(`true`)),
		Unit:       "done",
	}

	// Mon-Fri of the week of Wed 2024-07-17, four successes out of five.
	values := []string{"true", "true", "false", "true", "true"}
	var entries []entry.Entry
	for i, v := range values {
		entries = append(entries, testEntry(tk.ID, task.TypeBoolean, day(2024, 7, 15+i), v, false))
	}

	svc := newTestService(tk, entries)
	data, err := svc.WeeklyReview(context.Background(), userID, tk.ID, day(2024, 7, 17))
	require.NoError(t, err)

	assert.Equal(t, day(2024, 7, 14), data.FirstDayOfWeek)
	assert.Equal(t, 4, data.WeeklyCumulative)
	assert.Equal(t, 5, data.IdealCumulative)
	assert.Equal(t, 80.0, data.Score)
	assert.Equal(t, 5, data.WorkDayEntriesLength)
	assert.Equal(t, 0, data.BreakDaysEntriesLength)
	assert.Nil(t, data.WeeklyAverage)
	assert.Nil(t, data.LowestValue)
	assert.Nil(t, data.HighestValue)
	assert.Len(t, data.Entries, 5)
}

func TestCustomReviewNumber(t *testing.T) {
	userID := uuid.New()
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       task.TypeNumber,
		IdealValue: datatypes.JSON([]byte(`20`)),
		Unit:       "pages",
	}

	entries := []entry.Entry{
		testEntry(tk.ID, task.TypeNumber, day(2024, 7, 1), "10", false),
		testEntry(tk.ID, task.TypeNumber, day(2024, 7, 2), "20", false),
		testEntry(tk.ID, task.TypeNumber, day(2024, 7, 3), "30", false),
	}

	svc := newTestService(tk, entries)
	data, err := svc.CustomReview(context.Background(), userID, tk.ID, day(2024, 7, 1), day(2024, 7, 3))
	require.NoError(t, err)

	assert.Equal(t, day(2024, 7, 1), data.FirstDay)
	assert.Equal(t, day(2024, 7, 3), data.LastDay)
	assert.Equal(t, 60.0, data.Cumulative)
	assert.Equal(t, 20.0, data.AverageValue)
	assert.Equal(t, 60.0, data.IdealCumulative)
	assert.Equal(t, 100.0, data.Score)
	assert.Equal(t, 10.0, data.LowestValue)
	assert.Equal(t, 30.0, data.HighestValue)
}

func TestWeeklyReviewTime(t *testing.T) {
	userID := uuid.New()
	maxTime := "10:00"
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       task.TypeTime,
		IdealValue: datatypes.JSON([]byte(`"09:00"`)),
		MaxTime:    &maxTime,
		Unit:       "wake-up",
	}

	entries := []entry.Entry{
		testEntry(tk.ID, task.TypeTime, day(2024, 7, 15), `"09:30"`, false),
		testEntry(tk.ID, task.TypeTime, day(2024, 7, 16), `"08:30"`, false),
		testEntry(tk.ID, task.TypeTime, day(2024, 7, 17), `"10:30"`, false),
	}

	svc := newTestService(tk, entries)
	data, err := svc.WeeklyReview(context.Background(), userID, tk.ID, day(2024, 7, 17))
	require.NoError(t, err)

	assert.Equal(t, []int{50, 100, 0}, data.TimeScores)
	assert.Equal(t, 50.0, data.Score)
	assert.Equal(t, "09:30", data.WeeklyAverage)
	assert.Equal(t, "08:30", data.LowestValue)
	assert.Equal(t, "10:30", data.HighestValue)
	assert.Nil(t, data.WeeklyCumulative)
	assert.Nil(t, data.IdealCumulative)
}

func TestMonthlyReviewMinutes(t *testing.T) {
	userID := uuid.New()
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       task.TypeMinutes,
		IdealValue: datatypes.JSON([]byte(`60`)),
		Unit:       "minutes",
	}

	entries := []entry.Entry{
		testEntry(tk.ID, task.TypeMinutes, day(2024, 7, 1), "30", false),
		testEntry(tk.ID, task.TypeMinutes, day(2024, 7, 2), "60", false),
		testEntry(tk.ID, task.TypeMinutes, day(2024, 7, 3), "90", true),
	}

	svc := newTestService(tk, entries)
	data, err := svc.MonthlyReview(context.Background(), userID, tk.ID, day(2024, 7, 20))
	require.NoError(t, err)

	// The break-day entry is excluded from every aggregate.
	assert.Equal(t, 90.0, data.Cumulative)
	assert.Equal(t, 45.0, data.AverageValue)
	assert.Equal(t, 120.0, data.IdealCumulative)
	assert.Equal(t, 75.0, data.Score)
	assert.Equal(t, 1, data.BreakDaysEntriesLength)
	assert.Equal(t, 2, data.WorkDayEntriesLength)
}

func TestReviewAllBreakDays(t *testing.T) {
	userID := uuid.New()
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       task.TypeNumber,
		IdealValue: datatypes.JSON([]byte(`20`)),
	}

	entries := []entry.Entry{
		testEntry(tk.ID, task.TypeNumber, day(2024, 7, 1), "10", true),
		testEntry(tk.ID, task.TypeNumber, day(2024, 7, 2), "20", true),
	}

	svc := newTestService(tk, entries)
	data, err := svc.CustomReview(context.Background(), userID, tk.ID, day(2024, 7, 1), day(2024, 7, 2))
	require.NoError(t, err)

	// Nothing to measure against: no averages, no score, no extrema.
	assert.Nil(t, data.Score)
	assert.Nil(t, data.AverageValue)
	assert.Nil(t, data.LowestValue)
	assert.Nil(t, data.HighestValue)
	assert.Equal(t, 2, data.BreakDaysEntriesLength)
	assert.Equal(t, 0, data.WorkDayEntriesLength)
}

func TestReviewEmptyWindow(t *testing.T) {
	userID := uuid.New()
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       task.TypeBoolean,
		IdealValue: datatypes.JSON([]byte(`true`)),
	}

	svc := newTestService(tk, nil)
	_, err := svc.WeeklyReview(context.Background(), userID, tk.ID, day(2024, 7, 17))
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestReviewOwnership(t *testing.T) {
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Type:       task.TypeBoolean,
		IdealValue: datatypes.JSON([]byte(`true`)),
	}

	svc := newTestService(tk, nil)
	_, err := svc.OverallReview(context.Background(), uuid.New(), tk.ID)
	assert.ErrorIs(t, err, task.ErrNotTaskOwner)
}

func TestOverallReviewUsesTaskLifetime(t *testing.T) {
	userID := uuid.New()
	tk := &task.Task{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         task.TypeBoolean,
		IdealValue:   datatypes.JSON([]byte(`true`)),
		StartingDate: day(2024, 7, 1),
		EndingDate:   day(2024, 7, 31),
	}

	entries := []entry.Entry{
		testEntry(tk.ID, task.TypeBoolean, day(2024, 7, 1), "true", false),
		testEntry(tk.ID, task.TypeBoolean, day(2024, 7, 2), "false", false),
	}

	svc := newTestService(tk, entries)
	data, err := svc.OverallReview(context.Background(), userID, tk.ID)
	require.NoError(t, err)

	assert.Equal(t, day(2024, 7, 1), data.FirstDay)
	assert.Equal(t, day(2024, 7, 31), data.LastDay)
	assert.Equal(t, 1, data.Cumulative)
	assert.Equal(t, 50.0, data.Score)
}
