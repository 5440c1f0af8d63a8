package slot_mappings

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
)

type SlotService interface {
	Mappings(ctx context.Context) (*models.MappingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
