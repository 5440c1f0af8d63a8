package register_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	panelRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/panel"
	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
)

// UseCase use case for registering a student to an interview slot
type UseCase struct {
	panelRepo   PanelRepository
	slotRepo    SlotRepository
	studentRepo StudentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase creates the use case
func NewUseCase(
	panelRepo PanelRepository,
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		panelRepo:   panelRepo,
		slotRepo:    slotRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute registers a student to a slot.
// The whole check-then-book sequence runs in a serializable transaction
// with conditional updates on both the slot and the student row, so two
// concurrent registrations for the same slot, or two slots for the same
// student, cannot both succeed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegisterSlot: student=%d, panel=%d, slot=%d", req.StudentID, req.PanelID, req.SlotID)

	// 1. Input validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RegisterSlot: validation failed: %v", err)
		return nil, err
	}

	var (
		panel *domain.Panel
		slot  *domain.Slot
	)

	// 2. Run all checks and both conditional updates in one serializable transaction
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. The student must exist
		student, err := uc.studentRepo.GetByID(txCtx, req.StudentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				uc.logger.Warn("RegisterSlot: student id=%d not found", req.StudentID)
				return ErrStudentNotFound
			}
			uc.logger.Error("RegisterSlot: failed to get student id=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}

		// 2.2. Self-registration must be open for this student
		if !student.RegistrationOpen {
			uc.logger.Warn("RegisterSlot: registration closed for student id=%d", req.StudentID)
			return ErrRegistrationClosed
		}

		// 2.3. One active booking per student
		if student.IsBound() {
			uc.logger.Warn("RegisterSlot: student id=%d already holds slot id=%d",
				req.StudentID, *student.BookedSlotID)
			return ErrAlreadyRegistered
		}

		// 2.4. The panel must exist
		panel, err = uc.panelRepo.GetByID(txCtx, req.PanelID)
		if err != nil {
			if errors.Is(err, panelRepo.ErrPanelNotFound) {
				uc.logger.Warn("RegisterSlot: panel id=%d not found", req.PanelID)
				return ErrPanelNotFound
			}
			uc.logger.Error("RegisterSlot: failed to get panel id=%d: %v", req.PanelID, err)
			return fmt.Errorf("%w: failed to get panel: %v", ErrInternal, err)
		}

		// 2.5. The student must be on the panel roster
		onRoster, err := uc.panelRepo.RosterContains(txCtx, req.PanelID, req.StudentID)
		if err != nil {
			uc.logger.Error("RegisterSlot: roster check failed: %v", err)
			return fmt.Errorf("%w: roster check failed: %v", ErrInternal, err)
		}
		if !onRoster {
			uc.logger.Warn("RegisterSlot: student id=%d is not on roster of panel id=%d",
				req.StudentID, req.PanelID)
			return ErrNotOnRoster
		}

		// 2.6. The slot must exist in this panel
		slot, err = uc.slotRepo.GetByID(txCtx, req.PanelID, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("RegisterSlot: slot id=%d not found in panel id=%d", req.SlotID, req.PanelID)
				return ErrSlotNotFound
			}
			uc.logger.Error("RegisterSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.7. The slot must still be free
		if slot.IsBooked {
			uc.logger.Warn("RegisterSlot: slot id=%d is already booked", req.SlotID)
			return ErrSlotTaken
		}

		// 2.8. Panel-wide capacity
		booked, err := uc.slotRepo.CountBooked(txCtx, req.PanelID)
		if err != nil {
			uc.logger.Error("RegisterSlot: failed to count booked slots: %v", err)
			return fmt.Errorf("%w: failed to count booked slots: %v", ErrInternal, err)
		}
		if booked >= panel.Capacity {
			uc.logger.Warn("RegisterSlot: panel id=%d is full (%d/%d)", req.PanelID, booked, panel.Capacity)
			return ErrPanelFull
		}

		// 2.9. Conditionally book the slot
		if err := uc.slotRepo.Book(txCtx, req.PanelID, req.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
				return ErrSlotTaken
			}
			uc.logger.Error("RegisterSlot: failed to book slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to book slot: %v", ErrInternal, err)
		}

		// 2.10. Conditionally bind the student
		if err := uc.studentRepo.Bind(txCtx, req.StudentID, req.PanelID, req.SlotID); err != nil {
			if errors.Is(err, studentRepo.ErrAlreadyBound) {
				return ErrAlreadyRegistered
			}
			uc.logger.Error("RegisterSlot: failed to bind student id=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to bind student: %v", ErrInternal, err)
		}

		slot.IsBooked = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RegisterSlot: student=%d registered to slot=%d in panel=%d",
		req.StudentID, slot.ID, panel.ID)

	return buildResponse(req.StudentID, panel, slot), nil
}
