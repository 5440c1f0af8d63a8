package slot

import "errors"

var (
	// ErrSlotNotFound returned when the slot does not exist in the panel
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyBooked returned when the conditional booking update
	// finds the slot taken
	ErrSlotAlreadyBooked = errors.New("slot.repository: slot already booked")

	// ErrBuildQuery returned when building a SQL statement fails
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery returned when executing a SQL statement fails
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow returned when scanning a result row fails
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
