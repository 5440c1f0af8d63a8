package get_panel_slots

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
)

type SlotService interface {
	PanelSlots(ctx context.Context, panelID int64) (*models.PanelSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
