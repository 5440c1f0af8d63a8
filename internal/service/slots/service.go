package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	panelRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/panel"
	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/integrations/mailer"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/types"
)

// Service service for panel interview slots
type Service struct {
	panelRepo    PanelRepository
	slotRepo     SlotRepository
	studentRepo  StudentRepository
	mailerClient MailerClient
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a slots service
func NewService(
	panelRepo PanelRepository,
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		panelRepo:    panelRepo,
		slotRepo:     slotRepo,
		studentRepo:  studentRepo,
		mailerClient: mailerClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// AddSlot adds a single slot to a panel. The overlap check and the insert
// run in one serializable transaction so concurrent adds cannot slip two
// intersecting intervals past each other.
func (s *Service) AddSlot(ctx context.Context, panelID int64, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: panel=%d date=%s interval=%s-%s", panelID, req.Date, req.StartTime, req.EndTime)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in %s format", ErrInvalidInput, domain.DateFormat)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, req.EndTime)
	}

	slot := &domain.Slot{
		PanelID:   panelID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if err := slot.ValidateInterval(); err != nil {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	var panelName string

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		panel, err := s.panelRepo.GetByID(txCtx, panelID)
		if err != nil {
			if errors.Is(err, panelRepo.ErrPanelNotFound) {
				return ErrPanelNotFound
			}
			return fmt.Errorf("%w: AddSlot - get panel: %v", ErrInternal, err)
		}
		panelName = panel.Name

		overlaps, err := s.slotRepo.HasOverlapping(txCtx, panelID, date, start.String(), end.String())
		if err != nil {
			return fmt.Errorf("%w: AddSlot - overlap check: %v", ErrInternal, err)
		}
		if overlaps {
			return ErrSlotOverlaps
		}

		created, err := s.slotRepo.Create(txCtx, slot)
		if err != nil {
			return fmt.Errorf("%w: AddSlot - create slot: %v", ErrInternal, err)
		}
		slot = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddSlot: created slot id=%d in panel=%d", slot.ID, panelID)

	resp := models.FromDomainSlot(slot)
	if req.Notify {
		resp.NotifyFailed = s.notifyRoster(ctx, panelID, panelName,
			fmt.Sprintf("A new interview slot on %s is available in panel %q", req.Date, panelName))
	}

	return &resp, nil
}

// BulkAdd imports slot rows from an uploaded sheet. Rows that cannot be
// normalized are dropped and counted; accepted rows are appended as-is,
// the import does not check intervals against each other.
func (s *Service) BulkAdd(ctx context.Context, panelID int64, req *models.BulkAddRequest) (*models.BulkAddResponse, error) {
	s.logger.Info("BulkAdd: panel=%d rows=%d", panelID, len(req.Rows))

	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("%w: rows is required", ErrInvalidInput)
	}
	if len(req.Rows) > domain.MaxBulkImportRows {
		return nil, fmt.Errorf("%w: at most %d rows per import", ErrInvalidInput, domain.MaxBulkImportRows)
	}

	normalized, dropped := domain.NormalizeSlotRows(req.Rows)

	var created []*domain.Slot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.panelRepo.GetByID(txCtx, panelID); err != nil {
			if errors.Is(err, panelRepo.ErrPanelNotFound) {
				return ErrPanelNotFound
			}
			return fmt.Errorf("%w: BulkAdd - get panel: %v", ErrInternal, err)
		}

		if len(normalized) == 0 {
			return nil
		}

		slots, err := s.slotRepo.CreateBatch(txCtx, panelID, normalized)
		if err != nil {
			return fmt.Errorf("%w: BulkAdd - create batch: %v", ErrInternal, err)
		}
		created = slots
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("BulkAdd: panel=%d imported %d slots, dropped %d rows", panelID, len(created), dropped)

	return &models.BulkAddResponse{
		Added:   models.FromDomainSlots(created),
		Dropped: dropped,
	}, nil
}

// Delete deletes a slot, releasing its occupant first. One transaction:
// the slot is gone and the student is free, or nothing happened.
func (s *Service) Delete(ctx context.Context, panelID, slotID int64) (*models.DeleteSlotResponse, error) {
	s.logger.Info("DeleteSlot: panel=%d slot=%d", panelID, slotID)

	var released int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByID(txCtx, panelID, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Delete - get slot: %v", ErrInternal, err)
		}

		n, err := s.studentRepo.ReleaseBySlot(txCtx, slotID)
		if err != nil {
			return fmt.Errorf("%w: Delete - release occupant: %v", ErrInternal, err)
		}
		released = n

		if err := s.slotRepo.Delete(txCtx, panelID, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Delete - delete slot: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("DeleteSlot: deleted slot=%d from panel=%d, released %d students", slotID, panelID, released)
	return &models.DeleteSlotResponse{ReleasedStudents: released}, nil
}

// PanelSlots returns every slot of a panel with the student holding it,
// for the admin occupancy view.
func (s *Service) PanelSlots(ctx context.Context, panelID int64) (*models.PanelSlotsResponse, error) {
	if _, err := s.panelRepo.GetByID(ctx, panelID); err != nil {
		if errors.Is(err, panelRepo.ErrPanelNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, fmt.Errorf("%w: PanelSlots - get panel: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.GetByPanel(ctx, panelID)
	if err != nil {
		return nil, fmt.Errorf("%w: PanelSlots - get slots: %v", ErrInternal, err)
	}

	bound, err := s.studentRepo.GetBoundByPanel(ctx, panelID)
	if err != nil {
		return nil, fmt.Errorf("%w: PanelSlots - get bound students: %v", ErrInternal, err)
	}

	occupants := make(map[int64]*domain.Student, len(bound))
	for _, st := range bound {
		if st.BookedSlotID != nil {
			occupants[*st.BookedSlotID] = st
		}
	}

	resp := &models.PanelSlotsResponse{
		PanelID: panelID,
		Slots:   make([]models.SlotWithStudent, 0, len(slots)),
	}
	for _, sl := range slots {
		entry := models.SlotWithStudent{SlotResponse: models.FromDomainSlot(sl)}
		if st, ok := occupants[sl.ID]; ok {
			entry.Student = &models.BoundStudent{ID: st.ID, Name: st.Name, Email: st.Email}
		}
		resp.Slots = append(resp.Slots, entry)
	}

	return resp, nil
}

// Mappings returns every active student-to-slot binding across panels
func (s *Service) Mappings(ctx context.Context) (*models.MappingListResponse, error) {
	bindings, err := s.studentRepo.GetActiveBindings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Mappings - get bindings: %v", ErrInternal, err)
	}

	resp := &models.MappingListResponse{Mappings: make([]models.MappingResponse, 0, len(bindings))}
	for _, b := range bindings {
		resp.Mappings = append(resp.Mappings, models.FromDomainBinding(b))
	}

	return resp, nil
}

// notifyRoster sends a best-effort notification to the panel roster.
// Returns true when delivery failed.
func (s *Service) notifyRoster(ctx context.Context, panelID int64, panelName, subject string) bool {
	roster, err := s.panelRepo.GetRoster(ctx, panelID)
	if err != nil {
		s.logger.Error("notifyRoster: failed to load roster for panel %d: %v", panelID, err)
		return true
	}
	if len(roster) == 0 {
		return false
	}

	recipients, err := s.studentRepo.GetEmailsByIDs(ctx, roster)
	if err != nil {
		s.logger.Error("notifyRoster: failed to resolve recipients for panel %d: %v", panelID, err)
		return true
	}

	result, err := s.mailerClient.Notify(ctx, &mailer.NotifyRequest{
		PanelName:  panelName,
		Subject:    subject,
		Recipients: recipients,
	})
	if err != nil {
		s.logger.Error("notifyRoster: notification for panel %d failed: %v", panelID, err)
		return true
	}
	if result.Failed > 0 {
		s.logger.Warn("notifyRoster: panel %d: %d of %d notifications failed",
			panelID, result.Failed, result.Delivered+result.Failed)
	}
	return false
}
