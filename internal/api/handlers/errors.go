package handlers

import (
	"errors"
	"net/http"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/review"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/user"
)

// statusForError maps domain sentinel errors onto HTTP status codes. Anything
// unrecognized is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, entry.ErrEntryNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, review.ErrNoEntries):
		return http.StatusNotFound

	case errors.Is(err, task.ErrNotTaskOwner):
		return http.StatusUnauthorized

	case errors.Is(err, entry.ErrDuplicateEntry):
		return http.StatusConflict

	case errors.Is(err, task.ErrInvalidTaskType),
		errors.Is(err, task.ErrInvalidIdealValue),
		errors.Is(err, task.ErrInvalidBreakDay),
		errors.Is(err, task.ErrMaxTimeRequired),
		errors.Is(err, task.ErrImmutableTaskFields),
		errors.Is(err, task.ErrEndingDateTooEarly),
		errors.Is(err, entry.ErrInvalidEntryValue),
		errors.Is(err, entry.ErrDateOutOfRange),
		errors.Is(err, entry.ErrFirstEntryDate),
		errors.Is(err, entry.ErrEntryGap),
		errors.Is(err, entry.ErrDateNotSequential),
		errors.Is(err, entry.ErrDateImmutable),
		errors.Is(err, entry.ErrNotMostRecent):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
