package domain

import (
	"time"

	"github.com/Ash469/ccd-training-skilling-sub000/pkg/types"
)

// Slot represents a single bookable interview interval owned by a panel.
// Intervals are same-day: the date carries the calendar day, start and end
// are local clock times with start < end.
type Slot struct {
	ID        int64
	PanelID   int64
	Date      time.Time // calendar date, time part zeroed
	StartTime types.TimeString
	EndTime   types.TimeString
	IsBooked  bool

	CreatedAt time.Time
}

// SameDate reports whether both slots fall on the same calendar day
func (s *Slot) SameDate(other *Slot) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps reports whether the two slots' half-open intervals
// [start, end) intersect on the same date. Touching boundaries
// (one ends exactly where the other starts) do not overlap.
func (s *Slot) Overlaps(other *Slot) bool {
	if !s.SameDate(other) {
		return false
	}
	return s.StartTime.IsBefore(other.EndTime) && s.EndTime.IsAfter(other.StartTime)
}

// StartsBefore reports whether s begins strictly earlier than other,
// comparing (date, start time).
func (s *Slot) StartsBefore(other *Slot) bool {
	if !s.SameDate(other) {
		return s.Date.Before(other.Date)
	}
	return s.StartTime.IsBefore(other.StartTime)
}

// IsPast reports whether the slot's interval has fully elapsed: a slot is
// past once (date, end time) is no longer after now.
func (s *Slot) IsPast(now time.Time) bool {
	y, m, d := s.Date.Date()
	endMinutes, err := s.EndTime.Minutes()
	if err != nil {
		return false
	}
	end := time.Date(y, m, d, endMinutes/60, endMinutes%60, 0, 0, now.Location())
	return !end.After(now)
}

// ValidateInterval checks start < end
func (s *Slot) ValidateInterval() error {
	if !s.StartTime.IsBefore(s.EndTime) {
		return ErrInvalidInterval
	}
	return nil
}
