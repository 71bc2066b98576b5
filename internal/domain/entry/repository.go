package entry

import (
	"context"
	"errors"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound     = errors.New("entry not found")
	ErrDuplicateEntry    = errors.New("entry already exists for this date")
	ErrInvalidEntryValue = errors.New("invalid entry value")
	ErrDateOutOfRange    = errors.New("entry date is outside the task's lifetime")
	ErrFirstEntryDate    = errors.New("first entry must fall on the task's starting date")
	ErrEntryGap          = errors.New("entry date would leave a gap after the most recent entry")
	ErrDateNotSequential = errors.New("entry date must be the day after the most recent entry")
	ErrDateImmutable     = errors.New("entry date cannot be changed")
	ErrTypeMismatch      = errors.New("the task type does not match the type sent")
	ErrNotMostRecent     = errors.New("only the most recent entry can be deleted")
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// FindPage returns one page of a task's entries in ascending date order
	// together with the total entry count for the task.
	FindPage(ctx context.Context, taskID uuid.UUID, offset, limit int) ([]Entry, int64, error)
	// FindRange returns a task's entries with start <= date <= end, ascending.
	FindRange(ctx context.Context, taskID uuid.UUID, start, end time.Time) ([]Entry, error)
	FindAll(ctx context.Context, taskID uuid.UUID) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByTask removes every entry of a task and reports how many rows
	// were removed.
	DeleteByTask(ctx context.Context, taskID uuid.UUID) (int64, error)
	CountByTask(ctx context.Context, taskID uuid.UUID) (int64, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

func (r *repository) Create(ctx context.Context, e *Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var e Entry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindPage(ctx context.Context, taskID uuid.UUID, offset, limit int) ([]Entry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Entry{}).
		Where("task_id = ?", taskID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []Entry
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("date ASC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *repository) FindRange(ctx context.Context, taskID uuid.UUID, start, end time.Time) ([]Entry, error) {
	var entries []Entry
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND date >= ? AND date <= ?", taskID, start, end).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) FindAll(ctx context.Context, taskID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	result := r.db.WithContext(ctx).Model(&Entry{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"value":        e.Value,
			"is_break_day": e.IsBreakDay,
			"comment":      e.Comment,
			"updated_at":   e.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Entry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *repository) DeleteByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&Entry{}, "task_id = ?", taskID)
	return result.RowsAffected, result.Error
}

func (r *repository) CountByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Entry{}).
		Where("task_id = ?", taskID).
		Count(&total).Error
	return total, err
}
