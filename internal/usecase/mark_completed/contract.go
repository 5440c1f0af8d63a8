package mark_completed

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// SlotRepository slot storage interface
type SlotRepository interface {
	Delete(ctx context.Context, panelID, slotID int64) error
}

// StudentRepository student storage interface
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	Release(ctx context.Context, studentID int64) error
}

// TransactionManager interface for transaction control
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
