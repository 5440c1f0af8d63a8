package eligible_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
)

// UseCase use case for the student-facing slot eligibility view
type UseCase struct {
	panelRepo    PanelRepository
	slotRepo     SlotRepository
	studentRepo  StudentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case
func NewUseCase(
	panelRepo PanelRepository,
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		panelRepo:    panelRepo,
		slotRepo:     slotRepo,
		studentRepo:  studentRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute builds the slots a student can register for right now: open,
// not yet finished, and belonging to a panel whose roster has the
// student. A bound student gets their current booking and no slots.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}

	// 1. The student must exist
	student, err := uc.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			uc.logger.Warn("EligibleSlots: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("EligibleSlots: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	resp := &Response{
		Status:           student.Status,
		RegistrationOpen: student.RegistrationOpen,
		Slots:            []EligibleSlot{},
	}

	// 2. Panel names for display
	panels, err := uc.panelRepo.List(ctx)
	if err != nil {
		uc.logger.Error("EligibleSlots: failed to list panels: %v", err)
		return nil, fmt.Errorf("%w: failed to list panels: %v", ErrInternal, err)
	}
	panelNames := make(map[int64]string, len(panels))
	for _, p := range panels {
		panelNames[p.ID] = p.Name
	}

	// 3. A bound student sees their booking, not the open slots
	if student.IsBound() {
		slot, err := uc.slotRepo.GetByID(ctx, *student.BookedPanelID, *student.BookedSlotID)
		if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Error("EligibleSlots: failed to get booked slot id=%d: %v", *student.BookedSlotID, err)
			return nil, fmt.Errorf("%w: failed to get booked slot: %v", ErrInternal, err)
		}
		if slot != nil {
			resp.Booking = &CurrentBooking{
				SlotID:    slot.ID,
				PanelID:   slot.PanelID,
				PanelName: panelNames[slot.PanelID],
				Date:      slot.Date.Format(domain.DateFormat),
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
			}
		}
		return resp, nil
	}

	// 4. Open, unfinished slots across the student's panels, ordered by start
	slots, err := uc.slotRepo.GetOpenFutureForStudent(ctx, req.StudentID, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("EligibleSlots: failed to get open slots for student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get open slots: %v", ErrInternal, err)
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, fromDomainSlot(s, panelNames[s.PanelID]))
	}

	return resp, nil
}
