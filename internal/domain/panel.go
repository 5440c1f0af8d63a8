package domain

import "time"

// Panel represents an interview track with a roster of eligible students
// and a set of bookable time slots.
type Panel struct {
	ID          int64
	Name        string
	Description string
	Capacity    int // ceiling on concurrent bookings across the panel

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PanelWithSlots panel together with its remaining slots, used by listings
type PanelWithSlots struct {
	Panel
	Slots []*Slot
}

// EarliestSlot returns the first slot by (date, start time), or nil when
// the panel has no slots left.
func (p *PanelWithSlots) EarliestSlot() *Slot {
	if len(p.Slots) == 0 {
		return nil
	}
	earliest := p.Slots[0]
	for _, s := range p.Slots[1:] {
		if s.StartsBefore(earliest) {
			earliest = s
		}
	}
	return earliest
}
