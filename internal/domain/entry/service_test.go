package entry

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*task.Task
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *task.Task) error { return nil }
func (f *fakeTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}
func (f *fakeTaskRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	return nil, nil
}
func (f *fakeTaskRepo) Update(ctx context.Context, t *task.Task) error { return nil }
func (f *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeTaskRepo) SetDateOfLastTaskEntry(ctx context.Context, id uuid.UUID, date *time.Time) error {
	if t, ok := f.tasks[id]; ok {
		t.DateOfLastTaskEntry = date
	}
	return nil
}
func (f *fakeTaskRepo) FindExpired(ctx context.Context, now time.Time) ([]task.Task, error) {
	return nil, nil
}

// fakeEntryRepo keeps entries in memory and enforces the (task, date) unique
// index the way Postgres would.
type fakeEntryRepo struct {
	entries map[uuid.UUID]*Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[uuid.UUID]*Entry)}
}

func (f *fakeEntryRepo) Create(ctx context.Context, e *Entry) error {
	for _, existing := range f.entries {
		if existing.TaskID == e.TaskID && existing.Date.Equal(e.Date) {
			return ErrDuplicateEntry
		}
	}
	clone := *e
	f.entries[e.ID] = &clone
	return nil
}

func (f *fakeEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeEntryRepo) sorted(taskID uuid.UUID) []Entry {
	var out []Entry
	for _, e := range f.entries {
		if e.TaskID == taskID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (f *fakeEntryRepo) FindPage(ctx context.Context, taskID uuid.UUID, offset, limit int) ([]Entry, int64, error) {
	all := f.sorted(taskID)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeEntryRepo) FindRange(ctx context.Context, taskID uuid.UUID, start, end time.Time) ([]Entry, error) {
	var out []Entry
	for _, e := range f.sorted(taskID) {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) FindAll(ctx context.Context, taskID uuid.UUID) ([]Entry, error) {
	return f.sorted(taskID), nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, e *Entry) error {
	if _, ok := f.entries[e.ID]; !ok {
		return ErrEntryNotFound
	}
	clone := *e
	f.entries[e.ID] = &clone
	return nil
}

func (f *fakeEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeEntryRepo) DeleteByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var removed int64
	for id, e := range f.entries {
		if e.TaskID == taskID {
			delete(f.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeEntryRepo) CountByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.TaskID == taskID {
			n++
		}
	}
	return n, nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateTask(ctx context.Context, taskID uuid.UUID) error {
	f.calls++
	return nil
}

func newBooleanTask(userID uuid.UUID) *task.Task {
	return &task.Task{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         task.TypeBoolean,
		StartingDate: date(2024, 7, 1),
		EndingDate:   date(2024, 7, 31),
	}
}

func entryFixture(t *testing.T, svc Service, userID uuid.UUID, tk *task.Task, d time.Time, value string) *Entry {
	t.Helper()
	e, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID: userID,
		TaskID: tk.ID,
		Type:   string(tk.Type),
		Date:   d,
		Value:  json.RawMessage(value),
	})
	require.NoError(t, err)
	return e
}

func TestCreateEntry(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	invalidator := &fakeInvalidator{}
	svc := NewService(newFakeEntryRepo(), taskRepo, invalidator, zap.NewNop())

	e, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID:     userID,
		TaskID:     tk.ID,
		Type:       "Boolean",
		Date:       time.Date(2024, 7, 1, 15, 30, 0, 0, time.UTC),
		Value:      json.RawMessage(`true`),
		IsBreakDay: false,
		Comment:    "first day",
	})
	require.NoError(t, err)

	assert.Equal(t, date(2024, 7, 1), e.Date, "date is normalized to midnight")
	assert.Equal(t, task.TypeBoolean, e.Type)
	assert.Equal(t, "first day", e.Comment)
	require.NotNil(t, tk.DateOfLastTaskEntry)
	assert.Equal(t, date(2024, 7, 1), *tk.DateOfLastTaskEntry)
	assert.Equal(t, 1, invalidator.calls)
}

func TestCreateEntryTypeMismatch(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	_, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID: userID,
		TaskID: tk.ID,
		Type:   "number",
		Date:   date(2024, 7, 1),
		Value:  json.RawMessage(`5`),
	})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCreateEntryNotOwner(t *testing.T) {
	tk := newBooleanTask(uuid.New())
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	_, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID: uuid.New(),
		TaskID: tk.ID,
		Type:   "boolean",
		Date:   date(2024, 7, 1),
		Value:  json.RawMessage(`true`),
	})
	assert.ErrorIs(t, err, task.ErrNotTaskOwner)
}

func TestCreateEntrySequence(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	entryFixture(t, svc, userID, tk, date(2024, 7, 1), `true`)
	entryFixture(t, svc, userID, tk, date(2024, 7, 2), `false`)

	_, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID: userID,
		TaskID: tk.ID,
		Type:   "boolean",
		Date:   date(2024, 7, 4),
		Value:  json.RawMessage(`true`),
	})
	assert.ErrorIs(t, err, ErrEntryGap)

	_, err = svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID: userID,
		TaskID: tk.ID,
		Type:   "boolean",
		Date:   date(2024, 7, 2),
		Value:  json.RawMessage(`true`),
	})
	assert.ErrorIs(t, err, ErrDateNotSequential)
}

func TestUpdateEntry(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	e := entryFixture(t, svc, userID, tk, date(2024, 7, 1), `false`)

	updated, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
		UserID:     userID,
		TaskID:     tk.ID,
		EntryID:    e.ID,
		Type:       "boolean",
		Date:       date(2024, 7, 1),
		Value:      json.RawMessage(`true`),
		IsBreakDay: true,
		Comment:    "corrected",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(updated.Value))
	assert.True(t, updated.IsBreakDay)
	assert.Equal(t, "corrected", updated.Comment)

	// Moving the entry to another day is not allowed.
	_, err = svc.UpdateEntry(context.Background(), UpdateEntryInput{
		UserID:  userID,
		TaskID:  tk.ID,
		EntryID: e.ID,
		Type:    "boolean",
		Date:    date(2024, 7, 2),
		Value:   json.RawMessage(`true`),
	})
	assert.ErrorIs(t, err, ErrDateImmutable)
}

func TestListEntriesPagination(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	for i := 0; i < 10; i++ {
		entryFixture(t, svc, userID, tk, date(2024, 7, 1+i), `true`)
	}

	first, err := svc.ListEntries(context.Background(), userID, tk.ID, 1)
	require.NoError(t, err)
	assert.Len(t, first.Entries, PageSize)
	assert.Equal(t, int64(10), first.Total)
	assert.Equal(t, date(2024, 7, 1), first.Entries[0].Date)

	second, err := svc.ListEntries(context.Background(), userID, tk.ID, 2)
	require.NoError(t, err)
	assert.Len(t, second.Entries, 2)
	assert.Equal(t, date(2024, 7, 9), second.Entries[0].Date)
}

func TestEntryRoundTrip(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	created, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		UserID:     userID,
		TaskID:     tk.ID,
		Type:       "boolean",
		Date:       date(2024, 7, 1),
		Value:      json.RawMessage(`true`),
		IsBreakDay: true,
		Comment:    "rest day",
	})
	require.NoError(t, err)

	page, err := svc.ListEntries(context.Background(), userID, tk.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)

	got := page.Entries[0]
	assert.Equal(t, created.ID, got.ID)
	assert.JSONEq(t, `true`, string(got.Value))
	assert.Equal(t, date(2024, 7, 1), got.Date)
	assert.True(t, got.IsBreakDay)
	assert.Equal(t, "rest day", got.Comment)
}

func TestDeleteMostRecent(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	svc := NewService(newFakeEntryRepo(), taskRepo, nil, zap.NewNop())

	first := entryFixture(t, svc, userID, tk, date(2024, 7, 1), `true`)
	second := entryFixture(t, svc, userID, tk, date(2024, 7, 2), `true`)

	// Only the tail of the run can go.
	err := svc.DeleteMostRecent(context.Background(), userID, tk.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotMostRecent)

	require.NoError(t, svc.DeleteMostRecent(context.Background(), userID, tk.ID, second.ID))
	require.NotNil(t, tk.DateOfLastTaskEntry)
	assert.Equal(t, date(2024, 7, 1), *tk.DateOfLastTaskEntry)

	// Removing the last remaining entry clears the progress marker.
	require.NoError(t, svc.DeleteMostRecent(context.Background(), userID, tk.ID, first.ID))
	assert.Nil(t, tk.DateOfLastTaskEntry)
}

func TestDeleteAll(t *testing.T) {
	userID := uuid.New()
	tk := newBooleanTask(userID)
	taskRepo := &fakeTaskRepo{tasks: map[uuid.UUID]*task.Task{tk.ID: tk}}
	repo := newFakeEntryRepo()
	svc := NewService(repo, taskRepo, nil, zap.NewNop())

	entryFixture(t, svc, userID, tk, date(2024, 7, 1), `true`)
	entryFixture(t, svc, userID, tk, date(2024, 7, 2), `true`)

	require.NoError(t, svc.DeleteAll(context.Background(), userID, tk.ID))
	assert.Nil(t, tk.DateOfLastTaskEntry)

	remaining, err := repo.CountByTask(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	// With the marker cleared, the run restarts from the starting date.
	entryFixture(t, svc, userID, tk, date(2024, 7, 1), `true`)
}
