package delete_panel

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

type PanelService interface {
	Delete(ctx context.Context, panelID int64) (*models.DeletePanelResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
