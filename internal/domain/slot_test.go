package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeSlot(date string, start, end string) *Slot {
	d, _ := time.Parse(DateFormat, date)
	return &Slot{
		Date:      d,
		StartTime: mustTime(start),
		EndTime:   mustTime(end),
	}
}

func TestSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    *Slot
		b    *Slot
		want bool
	}{
		{
			name: "identical intervals",
			a:    makeSlot("2026-09-10", "10:00", "11:00"),
			b:    makeSlot("2026-09-10", "10:00", "11:00"),
			want: true,
		},
		{
			name: "partial overlap",
			a:    makeSlot("2026-09-10", "10:00", "11:00"),
			b:    makeSlot("2026-09-10", "10:30", "11:30"),
			want: true,
		},
		{
			name: "contained interval",
			a:    makeSlot("2026-09-10", "09:00", "12:00"),
			b:    makeSlot("2026-09-10", "10:00", "11:00"),
			want: true,
		},
		{
			name: "touching boundaries do not overlap",
			a:    makeSlot("2026-09-10", "10:00", "11:00"),
			b:    makeSlot("2026-09-10", "11:00", "12:00"),
			want: false,
		},
		{
			name: "disjoint same day",
			a:    makeSlot("2026-09-10", "09:00", "10:00"),
			b:    makeSlot("2026-09-10", "14:00", "15:00"),
			want: false,
		},
		{
			name: "same interval different day",
			a:    makeSlot("2026-09-10", "10:00", "11:00"),
			b:    makeSlot("2026-09-11", "10:00", "11:00"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSlot_StartsBefore(t *testing.T) {
	earlier := makeSlot("2026-09-10", "10:00", "11:00")
	later := makeSlot("2026-09-10", "12:00", "13:00")
	nextDay := makeSlot("2026-09-11", "08:00", "09:00")

	assert.True(t, earlier.StartsBefore(later))
	assert.False(t, later.StartsBefore(earlier))
	assert.True(t, later.StartsBefore(nextDay))
	assert.False(t, nextDay.StartsBefore(earlier))
}

func TestSlot_IsPast(t *testing.T) {
	slot := makeSlot("2026-09-10", "10:00", "11:00")

	day := func(h, m int) time.Time {
		return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
	}

	assert.False(t, slot.IsPast(day(9, 0)), "before start")
	assert.False(t, slot.IsPast(day(10, 30)), "in progress")
	assert.True(t, slot.IsPast(day(11, 0)), "exactly at end")
	assert.True(t, slot.IsPast(day(12, 0)), "after end")
	assert.True(t, slot.IsPast(time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)), "next day")
}

func TestSlot_ValidateInterval(t *testing.T) {
	assert.NoError(t, makeSlot("2026-09-10", "10:00", "11:00").ValidateInterval())
	assert.ErrorIs(t, makeSlot("2026-09-10", "11:00", "10:00").ValidateInterval(), ErrInvalidInterval)
	assert.ErrorIs(t, makeSlot("2026-09-10", "10:00", "10:00").ValidateInterval(), ErrInvalidInterval)
}
