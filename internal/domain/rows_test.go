package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash469/ccd-training-skilling-sub000/pkg/types"
)

func mustTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestParseImportDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso", input: "2026-09-10", want: "2026-09-10"},
		{name: "dmy dashes", input: "10-09-2026", want: "2026-09-10"},
		{name: "dmy slashes", input: "10/09/2026", want: "2026-09-10"},
		{name: "two digit year dashes", input: "10-09-26", want: "2026-09-10"},
		{name: "two digit year slashes", input: "10/09/26", want: "2026-09-10"},
		{name: "surrounding whitespace", input: "  2026-09-10  ", want: "2026-09-10"},
		{name: "month day swapped out of range", input: "2026-25-01", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImportDate(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnparseableDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateFormat))
		})
	}
}

func TestNormalizeSlotRow(t *testing.T) {
	tests := []struct {
		name    string
		row     SlotRow
		wantErr error
	}{
		{
			name: "valid row",
			row:  SlotRow{Date: "2026-09-10", StartTime: "10:00", EndTime: "11:00"},
		},
		{
			name: "valid row with alternate date form",
			row:  SlotRow{Date: "10/09/26", StartTime: "09:15", EndTime: "09:45"},
		},
		{
			name:    "missing date",
			row:     SlotRow{StartTime: "10:00", EndTime: "11:00"},
			wantErr: ErrMissingRowField,
		},
		{
			name:    "missing end time",
			row:     SlotRow{Date: "2026-09-10", StartTime: "10:00"},
			wantErr: ErrMissingRowField,
		},
		{
			name:    "whitespace only field",
			row:     SlotRow{Date: "2026-09-10", StartTime: "  ", EndTime: "11:00"},
			wantErr: ErrMissingRowField,
		},
		{
			name:    "unparseable date",
			row:     SlotRow{Date: "sometime", StartTime: "10:00", EndTime: "11:00"},
			wantErr: ErrUnparseableDate,
		},
		{
			name:    "malformed start time",
			row:     SlotRow{Date: "2026-09-10", StartTime: "25:00", EndTime: "11:00"},
			wantErr: types.ErrInvalidTimeString,
		},
		{
			name:    "end equals start",
			row:     SlotRow{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:00"},
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "end before start",
			row:     SlotRow{Date: "2026-09-10", StartTime: "11:00", EndTime: "10:00"},
			wantErr: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSlotRow(tt.row)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.StartTime.IsBefore(got.EndTime))
		})
	}
}

func TestNormalizeSlotRows(t *testing.T) {
	rows := []SlotRow{
		{Date: "2026-09-10", StartTime: "10:00", EndTime: "11:00"},
		{Date: "10-09-2026", StartTime: "11:00", EndTime: "12:00"},
		{Date: "2026-09-10", StartTime: "13:00", EndTime: "12:00"}, // inverted
		{Date: "", StartTime: "10:00", EndTime: "11:00"},           // missing date
		{Date: "2026-09-10", StartTime: "bad", EndTime: "11:00"},   // bad time
	}

	accepted, dropped := NormalizeSlotRows(rows)

	assert.Len(t, accepted, 2)
	assert.Equal(t, 3, dropped)

	want, _ := time.Parse(DateFormat, "2026-09-10")
	for _, slot := range accepted {
		assert.Equal(t, want, slot.Date)
	}
}

func TestNormalizeSlotRows_Empty(t *testing.T) {
	accepted, dropped := NormalizeSlotRows(nil)
	assert.Empty(t, accepted)
	assert.Zero(t, dropped)
}
