package panels

import "errors"

var (
	// ErrPanelNotFound returned when the panel does not exist
	ErrPanelNotFound = errors.New("panel not found")

	// ErrStudentNotFound returned when a student reference does not resolve
	ErrStudentNotFound = errors.New("student not found")

	// ErrStudentNotOnRoster returned when removing a student the panel does not have
	ErrStudentNotOnRoster = errors.New("student is not on the panel roster")

	// ErrInvalidInput returned on missing or malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal returned on internal service failures
	ErrInternal = errors.New("panels service: internal error")
)
