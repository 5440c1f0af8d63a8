package panels

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	panelRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/panel"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/integrations/mailer"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

// Service service for interview panels and their rosters
type Service struct {
	panelRepo    PanelRepository
	slotRepo     SlotRepository
	studentRepo  StudentRepository
	mailerClient MailerClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a panels service
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
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create creates a panel and resolves its initial roster.
// Roster resolution: selectAll takes every known student; spreadsheet rows
// are matched case-insensitively by email; explicit ids are unioned in.
func (s *Service) Create(ctx context.Context, req *models.CreatePanelRequest) (*models.PanelResponse, error) {
	s.logger.Info("CreatePanel: name=%q capacity=%d selectAll=%v ids=%d rows=%d",
		req.Name, req.Capacity, req.SelectAll, len(req.StudentIDs), len(req.Rows))

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Capacity < domain.MinPanelCapacity {
		return nil, fmt.Errorf("%w: capacity must be at least %d", ErrInvalidInput, domain.MinPanelCapacity)
	}

	rosterIDs, err := s.resolveRoster(ctx, req)
	if err != nil {
		return nil, err
	}

	panel := &domain.Panel{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Capacity:    req.Capacity,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.panelRepo.Create(txCtx, panel)
		if err != nil {
			return fmt.Errorf("%w: Create - create panel: %v", ErrInternal, err)
		}
		panel = created

		if err := s.panelRepo.AddStudents(txCtx, panel.ID, rosterIDs); err != nil {
			return fmt.Errorf("%w: Create - seed roster: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreatePanel: created panel id=%d with %d roster students", panel.ID, len(rosterIDs))

	resp := models.FromDomainPanel(panel, rosterIDs, nil)
	resp.NotifyFailed = s.notifyRoster(ctx, req.Notify, panel.Name,
		fmt.Sprintf("You have been registered to interview panel %q", panel.Name), rosterIDs)

	return resp, nil
}

// List returns every panel with past slots filtered out and remaining
// slots sorted; panels are ordered by their earliest remaining slot, with
// slotless panels last.
func (s *Service) List(ctx context.Context) (*models.PanelListResponse, error) {
	allPanels, err := s.panelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: List - list panels: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	withSlots := make([]*domain.PanelWithSlots, 0, len(allPanels))
	rosters := make(map[int64][]int64, len(allPanels))

	for _, p := range allPanels {
		slots, err := s.slotRepo.GetByPanel(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: List - get slots for panel %d: %v", ErrInternal, p.ID, err)
		}

		remaining := make([]*domain.Slot, 0, len(slots))
		for _, sl := range slots {
			if !sl.IsPast(now) {
				remaining = append(remaining, sl)
			}
		}

		roster, err := s.panelRepo.GetRoster(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: List - get roster for panel %d: %v", ErrInternal, p.ID, err)
		}
		rosters[p.ID] = roster

		withSlots = append(withSlots, &domain.PanelWithSlots{Panel: *p, Slots: remaining})
	}

	// Panels with an upcoming slot first, ordered by that slot; the rest
	// keep their original relative order at the end.
	sort.SliceStable(withSlots, func(i, j int) bool {
		a, b := withSlots[i].EarliestSlot(), withSlots[j].EarliestSlot()
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.StartsBefore(b)
	})

	resp := &models.PanelListResponse{Panels: make([]models.PanelResponse, 0, len(withSlots))}
	for _, pws := range withSlots {
		p := pws.Panel
		resp.Panels = append(resp.Panels, *models.FromDomainPanel(&p, rosters[p.ID], pws.Slots))
	}

	return resp, nil
}

// Delete deletes a panel, first releasing every student bound to one of
// its slots. Runs as one transaction: either the panel is gone and all
// its students are free, or nothing happened.
func (s *Service) Delete(ctx context.Context, panelID int64) (*models.DeletePanelResponse, error) {
	s.logger.Info("DeletePanel: panel=%d", panelID)

	var released int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.panelRepo.GetByID(txCtx, panelID); err != nil {
			if errors.Is(err, panelRepo.ErrPanelNotFound) {
				return ErrPanelNotFound
			}
			return fmt.Errorf("%w: Delete - get panel: %v", ErrInternal, err)
		}

		n, err := s.studentRepo.ReleaseByPanel(txCtx, panelID)
		if err != nil {
			return fmt.Errorf("%w: Delete - release bound students: %v", ErrInternal, err)
		}
		released = n

		if err := s.panelRepo.Delete(txCtx, panelID); err != nil {
			if errors.Is(err, panelRepo.ErrPanelNotFound) {
				return ErrPanelNotFound
			}
			return fmt.Errorf("%w: Delete - delete panel: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("DeletePanel: deleted panel=%d, released %d students", panelID, released)
	return &models.DeletePanelResponse{ReleasedStudents: released}, nil
}

// AddStudents extends the roster with set-union semantics
func (s *Service) AddStudents(ctx context.Context, panelID int64, req *models.AddStudentsRequest) (*models.PanelResponse, error) {
	s.logger.Info("AddStudents: panel=%d students=%d", panelID, len(req.StudentIDs))

	if len(req.StudentIDs) == 0 {
		return nil, fmt.Errorf("%w: studentIds is required", ErrInvalidInput)
	}

	panel, err := s.panelRepo.GetByID(ctx, panelID)
	if err != nil {
		if errors.Is(err, panelRepo.ErrPanelNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, fmt.Errorf("%w: AddStudents - get panel: %v", ErrInternal, err)
	}

	if err := s.ensureStudentsExist(ctx, req.StudentIDs); err != nil {
		return nil, err
	}

	if err := s.panelRepo.AddStudents(ctx, panelID, req.StudentIDs); err != nil {
		return nil, fmt.Errorf("%w: AddStudents - add to roster: %v", ErrInternal, err)
	}

	roster, err := s.panelRepo.GetRoster(ctx, panelID)
	if err != nil {
		return nil, fmt.Errorf("%w: AddStudents - get roster: %v", ErrInternal, err)
	}

	s.logger.Info("AddStudents: panel=%d roster now has %d students", panelID, len(roster))

	resp := models.FromDomainPanel(panel, roster, nil)
	resp.NotifyFailed = s.notifyRoster(ctx, req.Notify, panel.Name,
		fmt.Sprintf("You have been registered to interview panel %q", panel.Name), req.StudentIDs)

	return resp, nil
}

// RemoveStudent removes one student from the roster. When the student
// holds a booked slot in this panel they are released in the same
// transaction and the slot becomes available again for others; the slot
// itself survives.
func (s *Service) RemoveStudent(ctx context.Context, panelID, studentID int64) error {
	s.logger.Info("RemoveStudent: panel=%d student=%d", panelID, studentID)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.panelRepo.GetByID(txCtx, panelID); err != nil {
			if errors.Is(err, panelRepo.ErrPanelNotFound) {
				return ErrPanelNotFound
			}
			return fmt.Errorf("%w: RemoveStudent - get panel: %v", ErrInternal, err)
		}

		student, err := s.studentRepo.GetByID(txCtx, studentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("%w: RemoveStudent - get student: %v", ErrInternal, err)
		}

		if err := s.panelRepo.RemoveStudent(txCtx, panelID, studentID); err != nil {
			if errors.Is(err, panelRepo.ErrStudentNotOnRoster) {
				return ErrStudentNotOnRoster
			}
			return fmt.Errorf("%w: RemoveStudent - remove from roster: %v", ErrInternal, err)
		}

		// Cross-cutting consistency: a roster edit must not leave the
		// student bound to a panel they are no longer part of.
		if student.IsBound() && *student.BookedPanelID == panelID {
			if err := s.slotRepo.Unbook(txCtx, *student.BookedSlotID); err != nil {
				return fmt.Errorf("%w: RemoveStudent - unbook slot: %v", ErrInternal, err)
			}
			if err := s.studentRepo.Release(txCtx, studentID); err != nil {
				return fmt.Errorf("%w: RemoveStudent - release student: %v", ErrInternal, err)
			}
			s.logger.Info("RemoveStudent: released student=%d from slot=%d", studentID, *student.BookedSlotID)
		}

		return nil
	})
}

// resolveRoster computes the deduplicated roster for panel creation
func (s *Service) resolveRoster(ctx context.Context, req *models.CreatePanelRequest) ([]int64, error) {
	if req.SelectAll {
		ids, err := s.studentRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: resolveRoster - list students: %v", ErrInternal, err)
		}
		return ids, nil
	}

	if err := s.ensureStudentsExist(ctx, req.StudentIDs); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	roster := make([]int64, 0, len(req.StudentIDs))

	for _, id := range req.StudentIDs {
		if !seen[id] {
			seen[id] = true
			roster = append(roster, id)
		}
	}

	if len(req.Rows) > 0 {
		emails := make([]string, 0, len(req.Rows))
		for _, row := range req.Rows {
			emails = append(emails, row.Email)
		}

		matched, err := s.studentRepo.GetIDsByEmails(ctx, emails)
		if err != nil {
			return nil, fmt.Errorf("%w: resolveRoster - match emails: %v", ErrInternal, err)
		}

		for _, id := range matched {
			if !seen[id] {
				seen[id] = true
				roster = append(roster, id)
			}
		}
	}

	return roster, nil
}

// ensureStudentsExist verifies every referenced student id resolves to a
// known student, so a dangling id fails cleanly instead of tripping the
// roster foreign key.
func (s *Service) ensureStudentsExist(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := s.studentRepo.FilterExisting(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: ensureStudentsExist - filter ids: %v", ErrInternal, err)
	}

	known := make(map[int64]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: unknown student id %d", ErrStudentNotFound, id)
		}
	}

	return nil
}

// notifyRoster sends a best-effort notification to the given students.
// Returns true when delivery failed; the caller's operation is unaffected.
func (s *Service) notifyRoster(ctx context.Context, notify bool, panelName, subject string, studentIDs []int64) bool {
	if !notify || len(studentIDs) == 0 {
		return false
	}

	recipients, err := s.studentRepo.GetEmailsByIDs(ctx, studentIDs)
	if err != nil {
		s.logger.Error("notifyRoster: failed to resolve recipients for panel %q: %v", panelName, err)
		return true
	}

	result, err := s.mailerClient.Notify(ctx, &mailer.NotifyRequest{
		PanelName:  panelName,
		Subject:    subject,
		Recipients: recipients,
	})
	if err != nil {
		s.logger.Error("notifyRoster: notification for panel %q failed: %v", panelName, err)
		return true
	}
	if result.Failed > 0 {
		s.logger.Warn("notifyRoster: panel %q: %d of %d notifications failed",
			panelName, result.Failed, result.Delivered+result.Failed)
	}
	return false
}
