package create_panel

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

type PanelService interface {
	Create(ctx context.Context, req *models.CreatePanelRequest) (*models.PanelResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
