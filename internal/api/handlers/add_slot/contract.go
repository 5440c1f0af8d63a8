package add_slot

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
)

type SlotService interface {
	AddSlot(ctx context.Context, panelID int64, req *models.AddSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
