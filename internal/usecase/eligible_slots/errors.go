package eligible_slots

import "errors"

var (
	// ErrValidation returned on malformed input
	ErrValidation = errors.New("validation error")

	// ErrStudentNotFound returned when the student does not exist
	ErrStudentNotFound = errors.New("student not found")

	// ErrInternal returned on internal failures
	ErrInternal = errors.New("eligible_slots: internal error")
)
