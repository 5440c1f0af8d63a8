package models

import (
	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// Request models

// AddSlotRequest request to add a single slot to a panel
type AddSlotRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Notify    bool   `json:"notify,omitempty"`
}

// BulkAddRequest request to import slot rows from an uploaded sheet
type BulkAddRequest struct {
	Rows []domain.SlotRow `json:"rows"`
}

// Response models

// SlotResponse slot data returned by slot operations
type SlotResponse struct {
	ID        int64  `json:"id"`
	PanelID   int64  `json:"panelId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`

	NotifyFailed bool `json:"notifyFailed,omitempty"`
}

// BulkAddResponse result of a bulk import: accepted slots plus the
// number of rows dropped during normalization
type BulkAddResponse struct {
	Added   []SlotResponse `json:"added"`
	Dropped int            `json:"dropped"`
}

// DeleteSlotResponse result of a cascading slot delete
type DeleteSlotResponse struct {
	ReleasedStudents int64 `json:"releasedStudents"`
}

// BoundStudent the student currently holding a slot
type BoundStudent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SlotWithStudent slot data with its occupant, for the admin panel view
type SlotWithStudent struct {
	SlotResponse
	Student *BoundStudent `json:"student,omitempty"`
}

// PanelSlotsResponse all slots of a panel with occupancy
type PanelSlotsResponse struct {
	PanelID int64             `json:"panelId"`
	Slots   []SlotWithStudent `json:"slots"`
}

// MappingResponse one active student-to-slot binding for the oversight view
type MappingResponse struct {
	StudentID    int64  `json:"studentId"`
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	PanelID      int64  `json:"panelId"`
	PanelName    string `json:"panelName"`
	SlotID       int64  `json:"slotId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// MappingListResponse all active bindings
type MappingListResponse struct {
	Mappings []MappingResponse `json:"mappings"`
}

// Conversion helpers

// FromDomainSlot converts a domain slot into a DTO
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		PanelID:   s.PanelID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		IsBooked:  s.IsBooked,
	}
}

// FromDomainSlots converts a slot slice into DTOs
func FromDomainSlots(slots []*domain.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = FromDomainSlot(s)
	}
	return out
}

// FromDomainBinding converts an active binding into a DTO
func FromDomainBinding(b *domain.SlotBinding) MappingResponse {
	return MappingResponse{
		StudentID:    b.StudentID,
		StudentName:  b.StudentName,
		StudentEmail: b.StudentEmail,
		PanelID:      b.PanelID,
		PanelName:    b.PanelName,
		SlotID:       b.Slot.ID,
		Date:         b.Slot.Date.Format(domain.DateFormat),
		StartTime:    b.Slot.StartTime.String(),
		EndTime:      b.Slot.EndTime.String(),
	}
}
