package eligible_slots

import (
	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// Request eligibility view request
type Request struct {
	StudentID int64
}

// EligibleSlot one open slot the student may register for
type EligibleSlot struct {
	SlotID    int64  `json:"slotId"`
	PanelID   int64  `json:"panelId"`
	PanelName string `json:"panelName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CurrentBooking the slot the student already holds, when bound
type CurrentBooking struct {
	SlotID    int64  `json:"slotId"`
	PanelID   int64  `json:"panelId"`
	PanelName string `json:"panelName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Response eligibility view: either open slots for a free student, or
// the current booking for a bound one. Status carries the student's
// eligibility flag itself, so a bound student whose slot row has since
// been deleted still reads as bound rather than as "no open slots".
type Response struct {
	Status           bool            `json:"status"`
	RegistrationOpen bool            `json:"registrationOpen"`
	Booking          *CurrentBooking `json:"booking,omitempty"`
	Slots            []EligibleSlot  `json:"slots"`
}

func fromDomainSlot(s *domain.Slot, panelName string) EligibleSlot {
	return EligibleSlot{
		SlotID:    s.ID,
		PanelID:   s.PanelID,
		PanelName: panelName,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
	}
}
