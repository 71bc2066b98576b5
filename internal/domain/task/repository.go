package task

import (
	"context"
	"errors"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task does not exist")
	ErrNotTaskOwner        = errors.New("user is not authorized to access this task")
	ErrInvalidTaskType     = errors.New("invalid task type")
	ErrInvalidIdealValue   = errors.New("ideal value does not match task type")
	ErrInvalidBreakDay     = errors.New("break day is not a day of the week")
	ErrMaxTimeRequired     = errors.New("maxTime in HH:MM format is required for time tasks")
	ErrImmutableTaskFields = errors.New("startingDate, type, and idealValue cannot be changed once an entry has been made")
	ErrEndingDateTooEarly  = errors.New("ending date cannot be earlier than the last task entry")
)

// Repository defines the interface for task persistence operations
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDateOfLastTaskEntry updates only the last-entry pointer. A nil date
	// clears it.
	SetDateOfLastTaskEntry(ctx context.Context, id uuid.UUID, date *time.Time) error
	// FindExpired returns tasks whose retention horizon has passed.
	FindExpired(ctx context.Context, now time.Time) ([]Task, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var t Task
	result := r.db.WithContext(ctx).First(&t, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	result := r.db.WithContext(ctx).Save(t)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) SetDateOfLastTaskEntry(ctx context.Context, id uuid.UUID, date *time.Time) error {
	result := r.db.WithContext(ctx).Model(&Task{}).
		Where("id = ?", id).
		Update("date_of_last_task_entry", date)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) FindExpired(ctx context.Context, now time.Time) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Find(&tasks).Error
	return tasks, err
}
