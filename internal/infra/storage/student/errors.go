package student

import "errors"

var (
	// ErrStudentNotFound returned when the student does not exist
	ErrStudentNotFound = errors.New("student.repository: student not found")

	// ErrAlreadyBound returned when the conditional bind update finds the
	// student already holding a booking
	ErrAlreadyBound = errors.New("student.repository: student already holds a booking")

	// ErrBuildQuery returned when building a SQL statement fails
	ErrBuildQuery = errors.New("student.repository: failed to build query")

	// ErrExecQuery returned when executing a SQL statement fails
	ErrExecQuery = errors.New("student.repository: failed to execute query")

	// ErrScanRow returned when scanning a result row fails
	ErrScanRow = errors.New("student.repository: failed to scan row")
)
