package register_slot

import "errors"

var (
	// ErrValidation returned on malformed input
	ErrValidation = errors.New("validation error")

	// ErrStudentNotFound returned when the student does not exist
	ErrStudentNotFound = errors.New("student not found")

	// ErrPanelNotFound returned when the panel does not exist
	ErrPanelNotFound = errors.New("panel not found")

	// ErrSlotNotFound returned when the slot does not exist in the panel
	ErrSlotNotFound = errors.New("slot not found")

	// ErrRegistrationClosed returned when self-registration is switched
	// off for the student
	ErrRegistrationClosed = errors.New("registration is closed")

	// ErrNotOnRoster returned when the student is not part of the panel
	ErrNotOnRoster = errors.New("student is not on the panel roster")

	// ErrAlreadyRegistered returned when the student already holds a slot
	ErrAlreadyRegistered = errors.New("student already holds a booked slot")

	// ErrSlotTaken returned when the slot is already booked
	ErrSlotTaken = errors.New("slot is already booked")

	// ErrPanelFull returned when the panel has no remaining capacity
	ErrPanelFull = errors.New("panel capacity exhausted")

	// ErrInternal returned on internal failures
	ErrInternal = errors.New("register_slot: internal error")
)
