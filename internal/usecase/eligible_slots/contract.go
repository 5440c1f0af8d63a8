package eligible_slots

import (
	"context"
	"time"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
)

// PanelRepository panel storage interface
type PanelRepository interface {
	List(ctx context.Context) ([]*domain.Panel, error)
}

// SlotRepository slot storage interface
type SlotRepository interface {
	GetByID(ctx context.Context, panelID, slotID int64) (*domain.Slot, error)
	GetOpenFutureForStudent(ctx context.Context, studentID int64, now time.Time) ([]*domain.Slot, error)
}

// StudentRepository student storage interface
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// TimeProvider interface for obtaining the current time (for testing)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
