package register_slot

import (
	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// Request registration request
type Request struct {
	StudentID int64
	PanelID   int64
	SlotID    int64
}

// Response confirmed registration
type Response struct {
	StudentID int64  `json:"studentId"`
	PanelID   int64  `json:"panelId"`
	PanelName string `json:"panelName"`
	SlotID    int64  `json:"slotId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func buildResponse(studentID int64, panel *domain.Panel, slot *domain.Slot) *Response {
	return &Response{
		StudentID: studentID,
		PanelID:   panel.ID,
		PanelName: panel.Name,
		SlotID:    slot.ID,
		Date:      slot.Date.Format(domain.DateFormat),
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
	}
}
