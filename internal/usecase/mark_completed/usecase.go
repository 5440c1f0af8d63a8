package mark_completed

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
)

// UseCase use case for marking a student's interview completed
type UseCase struct {
	slotRepo    SlotRepository
	studentRepo StudentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase creates the use case
func NewUseCase(
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute marks a student's interview completed: the consumed slot is
// removed and the student is released back to bookable state. Safe to
// call for an unbound student, nothing changes then.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkCompleted: student=%d", req.StudentID)

	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}

	resp := &Response{StudentID: req.StudentID}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. The student must exist
		student, err := uc.studentRepo.GetByID(txCtx, req.StudentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				uc.logger.Warn("MarkCompleted: student id=%d not found", req.StudentID)
				return ErrStudentNotFound
			}
			uc.logger.Error("MarkCompleted: failed to get student id=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}

		// 2. No binding, nothing to complete
		if !student.IsBound() {
			uc.logger.Info("MarkCompleted: student id=%d holds no slot, no-op", req.StudentID)
			return nil
		}

		// 3. Remove the consumed slot. The slot may already be gone if
		// an admin deleted it concurrently.
		err = uc.slotRepo.Delete(txCtx, *student.BookedPanelID, *student.BookedSlotID)
		if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Error("MarkCompleted: failed to delete slot id=%d: %v", *student.BookedSlotID, err)
			return fmt.Errorf("%w: failed to delete slot: %v", ErrInternal, err)
		}

		// 4. Release the student
		if err := uc.studentRepo.Release(txCtx, req.StudentID); err != nil {
			uc.logger.Error("MarkCompleted: failed to release student id=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to release student: %v", ErrInternal, err)
		}

		resp.Released = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Released {
		uc.logger.Info("MarkCompleted: student=%d released", req.StudentID)
	}
	return resp, nil
}
