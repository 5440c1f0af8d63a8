package models

import (
	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// Request models

// SpreadsheetRow one email row from an uploaded roster sheet; the sheet
// parser is an external collaborator, the service only sees plain rows.
type SpreadsheetRow struct {
	Email string `json:"email"`
}

// CreatePanelRequest request to create a panel with its initial roster
type CreatePanelRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Capacity    int              `json:"capacity"`
	StudentIDs  []int64          `json:"studentIds,omitempty"`
	SelectAll   bool             `json:"selectAll,omitempty"`
	Rows        []SpreadsheetRow `json:"rows,omitempty"`
	Notify      bool             `json:"notify,omitempty"`
}

// AddStudentsRequest request to extend a panel roster
type AddStudentsRequest struct {
	StudentIDs []int64 `json:"studentIds"`
	Notify     bool    `json:"notify,omitempty"`
}

// Response models

// SlotResponse slot data inside panel responses
type SlotResponse struct {
	ID        int64  `json:"id"`
	PanelID   int64  `json:"panelId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	IsBooked  bool   `json:"isBooked"`
}

// PanelResponse panel data with roster and remaining slots
type PanelResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Capacity    int            `json:"capacity"`
	StudentIDs  []int64        `json:"studentIds"`
	Slots       []SlotResponse `json:"slots"`

	// NotifyFailed reports a best-effort notification that could not be
	// delivered; the primary operation still succeeded.
	NotifyFailed bool `json:"notifyFailed,omitempty"`
}

// PanelListResponse ordered panel listing
type PanelListResponse struct {
	Panels []PanelResponse `json:"panels"`
}

// DeletePanelResponse result of a cascading panel delete
type DeletePanelResponse struct {
	ReleasedStudents int64 `json:"releasedStudents"`
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

// FromDomainPanel converts a panel with roster and slots into a DTO
func FromDomainPanel(p *domain.Panel, roster []int64, slots []*domain.Slot) *PanelResponse {
	return &PanelResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Capacity:    p.Capacity,
		StudentIDs:  roster,
		Slots:       FromDomainSlots(slots),
	}
}
