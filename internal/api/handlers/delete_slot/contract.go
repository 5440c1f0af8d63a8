package delete_slot

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
)

type SlotService interface {
	Delete(ctx context.Context, panelID, slotID int64) (*models.DeleteSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
