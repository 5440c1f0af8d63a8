package bulk_add_slots

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
)

type SlotService interface {
	BulkAdd(ctx context.Context, panelID int64, req *models.BulkAddRequest) (*models.BulkAddResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
