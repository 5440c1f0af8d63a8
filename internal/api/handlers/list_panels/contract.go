package list_panels

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

type PanelService interface {
	List(ctx context.Context) (*models.PanelListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
