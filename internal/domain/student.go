package domain

// Student subset of the portal's student record used by the scheduling
// engine. Status true means "eligible to register for a new slot"; a
// student holds a (panel, slot) binding exactly when status is false.
type Student struct {
	ID    int64
	Name  string
	Email string

	Status           bool // true = free to book, false = currently booked
	RegistrationOpen bool // administrator-controlled self-registration gate

	BookedPanelID *int64
	BookedSlotID  *int64
}

// IsBound reports whether the student currently holds a booking
func (s *Student) IsBound() bool {
	return s.BookedPanelID != nil && s.BookedSlotID != nil
}

// SlotBinding an active student↔slot pairing, used by the oversight views
type SlotBinding struct {
	StudentID    int64
	StudentName  string
	StudentEmail string
	PanelID      int64
	PanelName    string
	Slot         Slot
}
