package panel

import "errors"

var (
	// ErrPanelNotFound returned when the panel does not exist
	ErrPanelNotFound = errors.New("panel.repository: panel not found")

	// ErrStudentNotOnRoster returned when a roster removal matches no row
	ErrStudentNotOnRoster = errors.New("panel.repository: student not on roster")

	// ErrBuildQuery returned when building a SQL statement fails
	ErrBuildQuery = errors.New("panel.repository: failed to build query")

	// ErrExecQuery returned when executing a SQL statement fails
	ErrExecQuery = errors.New("panel.repository: failed to execute query")

	// ErrScanRow returned when scanning a result row fails
	ErrScanRow = errors.New("panel.repository: failed to scan row")
)
