package panels

import (
	"context"
	"time"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/integrations/mailer"
)

// PanelRepository panel and roster storage interface
type PanelRepository interface {
	Create(ctx context.Context, p *domain.Panel) (*domain.Panel, error)
	GetByID(ctx context.Context, id int64) (*domain.Panel, error)
	List(ctx context.Context) ([]*domain.Panel, error)
	Delete(ctx context.Context, id int64) error
	AddStudents(ctx context.Context, panelID int64, studentIDs []int64) error
	RemoveStudent(ctx context.Context, panelID, studentID int64) error
	GetRoster(ctx context.Context, panelID int64) ([]int64, error)
}

// SlotRepository slot storage interface used for cascades and listings
type SlotRepository interface {
	GetByPanel(ctx context.Context, panelID int64) ([]*domain.Slot, error)
	Unbook(ctx context.Context, slotID int64) error
}

// StudentRepository student storage interface
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	ListIDs(ctx context.Context) ([]int64, error)
	FilterExisting(ctx context.Context, ids []int64) ([]int64, error)
	GetIDsByEmails(ctx context.Context, emails []string) ([]int64, error)
	GetEmailsByIDs(ctx context.Context, ids []int64) ([]string, error)
	Release(ctx context.Context, studentID int64) error
	ReleaseByPanel(ctx context.Context, panelID int64) (int64, error)
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
