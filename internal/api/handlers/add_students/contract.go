package add_students

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

type PanelService interface {
	AddStudents(ctx context.Context, panelID int64, req *models.AddStudentsRequest) (*models.PanelResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
