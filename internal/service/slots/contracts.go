package slots

import (
	"context"
	"time"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/integrations/mailer"
)

// PanelRepository panel storage interface
type PanelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Panel, error)
	GetRoster(ctx context.Context, panelID int64) ([]int64, error)
}

// SlotRepository slot storage interface
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	CreateBatch(ctx context.Context, panelID int64, slots []domain.NormalizedSlot) ([]*domain.Slot, error)
	GetByID(ctx context.Context, panelID, slotID int64) (*domain.Slot, error)
	GetByPanel(ctx context.Context, panelID int64) ([]*domain.Slot, error)
	HasOverlapping(ctx context.Context, panelID int64, date time.Time, start, end string) (bool, error)
	Delete(ctx context.Context, panelID, slotID int64) error
}

// StudentRepository student storage interface used for cascades and views
type StudentRepository interface {
	GetEmailsByIDs(ctx context.Context, ids []int64) ([]string, error)
	ReleaseBySlot(ctx context.Context, slotID int64) (int64, error)
	GetBoundByPanel(ctx context.Context, panelID int64) ([]*domain.Student, error)
	GetActiveBindings(ctx context.Context) ([]*domain.SlotBinding, error)
}

// MailerClient fire-and-forget notification client
type MailerClient interface {
	Notify(ctx context.Context, req *mailer.NotifyRequest) (*mailer.NotifyResult, error)
}

// TransactionManager interface for transaction control
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
