package entry

import (
	"context"
	"strings"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageSize is the fixed number of entries per page in listings.
const PageSize = 8

// ReviewCacheInvalidator drops cached review results for a task. Implemented
// by the redis cache; entries changing is the only thing that stales reviews.
type ReviewCacheInvalidator interface {
	InvalidateTask(ctx context.Context, taskID uuid.UUID) error
}

// EntriesPage is one page of a task's entries, ascending by date.
type EntriesPage struct {
	Entries  []Entry
	Total    int64
	Page     int
	PageSize int
}

type Service interface {
	CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error)
	UpdateEntry(ctx context.Context, input UpdateEntryInput) (*Entry, error)
	ListEntries(ctx context.Context, userID, taskID uuid.UUID, page int) (*EntriesPage, error)
	// DeleteMostRecent removes an entry, but only if it is the task's most
	// recent one. Deleting from the middle would break the contiguous run.
	DeleteMostRecent(ctx context.Context, userID, taskID, entryID uuid.UUID) error
	// DeleteAll clears every entry of a task and resets its progress marker.
	DeleteAll(ctx context.Context, userID, taskID uuid.UUID) error
	// PurgeTask removes all entries of a task without ownership checks. Used
	// by task deletion and the expiry sweeper.
	PurgeTask(ctx context.Context, taskID uuid.UUID) (int64, error)
}

type service struct {
	repo      Repository
	tasks     task.Repository
	cache     ReviewCacheInvalidator
	validator SequentialValidator
	logger    *zap.Logger
}

func NewService(repo Repository, tasks task.Repository, cache ReviewCacheInvalidator, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		tasks:  tasks,
		cache:  cache,
		logger: logger,
	}
}

func (s *service) invalidateReviews(ctx context.Context, taskID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTask(ctx, taskID); err != nil {
		s.logger.Warn("failed to invalidate review cache",
			zap.String("task_id", taskID.String()),
			zap.Error(err))
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

func (s *service) CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	t, err := s.ownedTask(ctx, input.UserID, input.TaskID)
	if err != nil {
		return nil, err
	}

	if task.TaskType(strings.ToLower(input.Type)) != t.Type {
		return nil, ErrTypeMismatch
	}

	if err := s.validator.ValidateDate(t, input.Date); err != nil {
		return nil, err
	}

	codec, err := CodecFor(t.Type)
	if err != nil {
		return nil, err
	}
	value, err := codec.Decode(input.Value)
	if err != nil {
		return nil, err
	}

	day := task.DateOnly(input.Date)
	e := &Entry{
		ID:         uuid.New(),
		TaskID:     t.ID,
		UserID:     input.UserID,
		Type:       t.Type,
		Date:       day,
		Value:      value,
		IsBreakDay: input.IsBreakDay,
		Comment:    input.Comment,
		ExpiresAt:  t.ExpiresAt,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if err := s.tasks.SetDateOfLastTaskEntry(ctx, t.ID, &day); err != nil {
		return nil, err
	}

	s.invalidateReviews(ctx, t.ID)

	s.logger.Info("entry created",
		zap.String("entry_id", e.ID.String()),
		zap.String("task_id", t.ID.String()),
		zap.Time("date", day))

	return e, nil
}

func (s *service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*Entry, error) {
	e, err := s.repo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}
	if e.UserID != input.UserID || e.TaskID != input.TaskID {
		return nil, task.ErrNotTaskOwner
	}

	if task.TaskType(strings.ToLower(input.Type)) != e.Type {
		return nil, ErrTypeMismatch
	}

	// The value of a day can be corrected; the day itself cannot move.
	if !task.DateOnly(input.Date).Equal(task.DateOnly(e.Date)) {
		return nil, ErrDateImmutable
	}

	codec, err := CodecFor(e.Type)
	if err != nil {
		return nil, err
	}
	value, err := codec.Decode(input.Value)
	if err != nil {
		return nil, err
	}

	e.Value = value
	e.IsBreakDay = input.IsBreakDay
	e.Comment = input.Comment
	e.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.invalidateReviews(ctx, e.TaskID)
	return e, nil
}

func (s *service) ListEntries(ctx context.Context, userID, taskID uuid.UUID, page int) (*EntriesPage, error) {
	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	entries, total, err := s.repo.FindPage(ctx, taskID, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}
	return &EntriesPage{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: PageSize,
	}, nil
}

func (s *service) DeleteMostRecent(ctx context.Context, userID, taskID, entryID uuid.UUID) error {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	e, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if e.TaskID != t.ID {
		return task.ErrNotTaskOwner
	}

	day := task.DateOnly(e.Date)
	if t.DateOfLastTaskEntry == nil || !day.Equal(task.DateOnly(*t.DateOfLastTaskEntry)) {
		return ErrNotMostRecent
	}

	if err := s.repo.Delete(ctx, entryID); err != nil {
		return err
	}

	remaining, err := s.repo.CountByTask(ctx, taskID)
	if err != nil {
		return err
	}
	var last *time.Time
	if remaining > 0 {
		prev := day.AddDate(0, 0, -1)
		last = &prev
	}
	if err := s.tasks.SetDateOfLastTaskEntry(ctx, taskID, last); err != nil {
		return err
	}

	s.invalidateReviews(ctx, taskID)
	return nil
}

func (s *service) DeleteAll(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return err
	}

	removed, err := s.repo.DeleteByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.SetDateOfLastTaskEntry(ctx, taskID, nil); err != nil {
		return err
	}

	s.invalidateReviews(ctx, taskID)

	s.logger.Info("entries cleared",
		zap.String("task_id", taskID.String()),
		zap.Int64("removed", removed))

	return nil
}

func (s *service) PurgeTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	removed, err := s.repo.DeleteByTask(ctx, taskID)
	if err != nil {
		return 0, err
	}
	s.invalidateReviews(ctx, taskID)
	return removed, nil
}
