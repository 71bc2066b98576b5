package task

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// EntryPurger removes every entry belonging to a task. Implemented by the
// entry service; declared here so the cascade does not create an import cycle.
type EntryPurger interface {
	PurgeTask(ctx context.Context, taskID uuid.UUID) (int64, error)
}

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID) ([]Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input UpdateTaskInput) (*Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
	// PurgeExpired deletes every task past its retention horizon together
	// with its entries. Invoked by the scheduler.
	PurgeExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo          Repository
	users         user.Repository
	entries       EntryPurger
	horizonMonths int
	logger        *zap.Logger
}

func NewService(repo Repository, users user.Repository, entries EntryPurger, horizonMonths int, logger *zap.Logger) Service {
	if horizonMonths <= 0 {
		horizonMonths = 3
	}
	return &service{
		repo:          repo,
		users:         users,
		entries:       entries,
		horizonMonths: horizonMonths,
		logger:        logger,
	}
}

func capitalizeFirstLetter(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// normalizeBreakDays lowercases then capitalizes each day name and checks it
// against the calendar.
func normalizeBreakDays(days []string) ([]string, error) {
	normalized := make([]string, 0, len(days))
	for _, d := range days {
		day := capitalizeFirstLetter(strings.ToLower(strings.TrimSpace(d)))
		if !IsWeekdayName(day) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBreakDay, d)
		}
		normalized = append(normalized, day)
	}
	return normalized, nil
}

func validateMaxTime(tt TaskType, maxTime *string, idealValue datatypes.JSON) error {
	if tt != TypeTime {
		return nil
	}
	if maxTime == nil || !IsClockString(*maxTime) {
		return ErrMaxTimeRequired
	}
	var ideal string
	if err := json.Unmarshal(idealValue, &ideal); err != nil || !IsClockString(ideal) {
		return fmt.Errorf("%w: idealValue must be an HH:MM string for type time", ErrInvalidIdealValue)
	}
	// The scoring curve divides by maxTime-idealValue, so the two may not
	// coincide.
	if *maxTime <= ideal {
		return fmt.Errorf("%w: maxTime must be later than idealValue", ErrInvalidIdealValue)
	}
	return nil
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	owner, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	tt := TaskType(strings.ToLower(input.Type))
	if !tt.IsValid() {
		return nil, ErrInvalidTaskType
	}

	breakDays, err := normalizeBreakDays(input.BreakDays)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	horizon := DateOnly(now.AddDate(0, s.horizonMonths, 0))
	startingDate := DateOnly(input.StartingDate)
	endingDate := horizon
	if input.EndingDate != nil {
		endingDate = DateOnly(*input.EndingDate)
	}

	if err := validateMaxTime(tt, input.MaxTime, datatypes.JSON(input.IdealValue)); err != nil {
		return nil, err
	}

	t := &Task{
		ID:           uuid.New(),
		UserID:       input.UserID,
		Title:        strings.ToLower(input.Title),
		Type:         tt,
		IdealValue:   datatypes.JSON(input.IdealValue),
		MaxTime:      input.MaxTime,
		BreakDays:    breakDays,
		Unit:         strings.ToLower(input.Unit),
		Description:  input.Description,
		StartingDate: startingDate,
		EndingDate:   endingDate,
		ExpiresAt:    horizon,
	}
	if err := t.ValidateIdealValue(); err != nil {
		return nil, err
	}

	// Special users keep their data for the task's whole lifetime instead of
	// the default retention horizon.
	special, err := s.users.IsSpecialEmail(ctx, owner.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check special user list: %w", err)
	}
	if special {
		t.ExpiresAt = endingDate
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("user_id", t.UserID.String()),
		zap.String("type", string(t.Type)))

	return t, nil
}

func (s *service) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*Task, error) {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotTaskOwner
	}
	return t, nil
}

func (s *service) ListTasks(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	return s.repo.FindByUser(ctx, userID)
}

func sameJSONValue(a, b datatypes.JSON) bool {
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}

func (s *service) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input UpdateTaskInput) (*Task, error) {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotTaskOwner
	}

	tt := TaskType(strings.ToLower(input.Type))
	if !tt.IsValid() {
		return nil, ErrInvalidTaskType
	}

	breakDays, err := normalizeBreakDays(input.BreakDays)
	if err != nil {
		return nil, err
	}

	startingDate := DateOnly(input.StartingDate)

	endingDate := t.EndingDate
	if input.EndingDate != nil {
		endingDate = DateOnly(*input.EndingDate)
	}

	if t.DateOfLastTaskEntry != nil {
		if !endingDate.After(*t.DateOfLastTaskEntry) {
			return nil, ErrEndingDateTooEarly
		}
		if !startingDate.Equal(t.StartingDate) || tt != t.Type ||
			!sameJSONValue(datatypes.JSON(input.IdealValue), t.IdealValue) {
			return nil, ErrImmutableTaskFields
		}
	}

	if err := validateMaxTime(tt, input.MaxTime, datatypes.JSON(input.IdealValue)); err != nil {
		return nil, err
	}

	t.Title = strings.ToLower(input.Title)
	t.Unit = strings.ToLower(input.Unit)
	t.Type = tt
	t.BreakDays = breakDays
	if input.Description != "" {
		t.Description = input.Description
	}
	t.StartingDate = startingDate
	t.EndingDate = endingDate
	t.IdealValue = datatypes.JSON(input.IdealValue)
	t.MaxTime = input.MaxTime
	if err := t.ValidateIdealValue(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return ErrNotTaskOwner
	}

	// Entries first; a task row without its entries is recoverable, orphaned
	// entries are not.
	removed, err := s.entries.PurgeTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task entries: %w", err)
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.logger.Info("task deleted",
		zap.String("task_id", taskID.String()),
		zap.Int64("entries_removed", removed))

	return nil
}

func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	expired, err := s.repo.FindExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to find expired tasks: %w", err)
	}

	var purged int64
	for _, t := range expired {
		if _, err := s.entries.PurgeTask(ctx, t.ID); err != nil {
			s.logger.Error("failed to purge entries of expired task",
				zap.String("task_id", t.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.repo.Delete(ctx, t.ID); err != nil {
			s.logger.Error("failed to delete expired task",
				zap.String("task_id", t.ID.String()),
				zap.Error(err))
			continue
		}
		purged++
	}

	return purged, nil
}
