package remove_student

import (
	"context"
)

type PanelService interface {
	RemoveStudent(ctx context.Context, panelID, studentID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
