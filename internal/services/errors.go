package services

import (
	"errors"
	"net/http"
)

// Service error taxonomy. Handlers map these onto HTTP statuses with
// statusForError; the message text is what end users see inline in forms.
var (
	ErrNotFound           = errors.New("record not found")
	ErrSlotConflict       = errors.New("this time slot is already booked, please choose a different time")
	ErrCancellationWindow = errors.New("appointments cannot be cancelled within 24 hours of their scheduled time")
	ErrStoreUnavailable   = errors.New("the service is temporarily unavailable, please try again")
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrCancellationWindow):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
