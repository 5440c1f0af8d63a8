package domain

import "errors"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinPanelCapacity  = 1
	MaxNameLength     = 200
	MaxDescriptionLen = 2000
	MaxBulkImportRows = 500
)

// importDateLayouts accepted date forms for bulk slot import, tried in
// order. Two-digit years expand into the 2000s.
var importDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02-01-06",
	"02/01/2006",
	"02/01/06",
}

var (
	// ErrInvalidInterval returned when a slot's start time is not before its end time
	ErrInvalidInterval = errors.New("domain: slot start time must be before end time")

	// ErrUnparseableDate returned when a bulk-import date matches no accepted layout
	ErrUnparseableDate = errors.New("domain: unparseable date")

	// ErrMissingRowField returned when a bulk-import row lacks date, start or end
	ErrMissingRowField = errors.New("domain: row is missing a required field")
)
