package register_slot

import (
	"context"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// PanelRepository panel storage interface
type PanelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Panel, error)
	RosterContains(ctx context.Context, panelID, studentID int64) (bool, error)
}

// SlotRepository slot storage interface
type SlotRepository interface {
	GetByID(ctx context.Context, panelID, slotID int64) (*domain.Slot, error)
	CountBooked(ctx context.Context, panelID int64) (int, error)
	Book(ctx context.Context, panelID, slotID int64) error
}

// StudentRepository student storage interface
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	Bind(ctx context.Context, studentID, panelID, slotID int64) error
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
