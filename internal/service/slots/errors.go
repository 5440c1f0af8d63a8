package slots

import "errors"

var (
	// ErrPanelNotFound returned when the panel does not exist
	ErrPanelNotFound = errors.New("panel not found")

	// ErrSlotNotFound returned when the slot does not exist in the panel
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotOverlaps returned when a new interval intersects an existing
	// slot of the same panel on the same date
	ErrSlotOverlaps = errors.New("slot overlaps an existing slot")

	// ErrInvalidInput returned on missing or malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal returned on internal service failures
	ErrInternal = errors.New("slots service: internal error")
)
