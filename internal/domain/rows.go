package domain

import (
	"strings"
	"time"

	"github.com/Ash469/ccd-training-skilling-sub000/pkg/types"
)

// SlotRow one already-tokenized row from an uploaded slot sheet.
// The engine never sees file bytes; the spreadsheet parser is an
// external collaborator that produces these rows.
type SlotRow struct {
	Date      string
	StartTime string
	EndTime   string
}

// NormalizedSlot canonical slot values produced from a SlotRow
type NormalizedSlot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// NormalizeSlotRow turns one heterogeneous row into canonical slot values.
// Rejected rows: missing fields, a date matching no accepted layout,
// malformed times, end not after start.
func NormalizeSlotRow(row SlotRow) (*NormalizedSlot, error) {
	if strings.TrimSpace(row.Date) == "" ||
		strings.TrimSpace(row.StartTime) == "" ||
		strings.TrimSpace(row.EndTime) == "" {
		return nil, ErrMissingRowField
	}

	date, err := ParseImportDate(row.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(row.StartTime))
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(strings.TrimSpace(row.EndTime))
	if err != nil {
		return nil, err
	}

	if !start.IsBefore(end) {
		return nil, ErrInvalidInterval
	}

	return &NormalizedSlot{Date: date, StartTime: start, EndTime: end}, nil
}

// NormalizeSlotRows normalizes a batch, dropping malformed rows.
// Returns the accepted slots and the number of dropped rows.
func NormalizeSlotRows(rows []SlotRow) ([]NormalizedSlot, int) {
	accepted := make([]NormalizedSlot, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		normalized, err := NormalizeSlotRow(row)
		if err != nil {
			dropped++
			continue
		}
		accepted = append(accepted, *normalized)
	}

	return accepted, dropped
}

// ParseImportDate parses a date in any of the accepted import layouts,
// expanding two-digit years into the 2000s.
func ParseImportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range importDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, nil
	}

	return time.Time{}, ErrUnparseableDate
}
