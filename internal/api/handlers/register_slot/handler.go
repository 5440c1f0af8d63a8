package register_slot

import (
	"errors"
	"net/http"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/middleware"
	registerSlot "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/register_slot"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgMissingUserID       = "missing user ID"
	msgStudentNotFound     = "student not found"
	msgPanelNotFound       = "panel not found"
	msgSlotNotFound        = "slot not found"
	msgRegistrationClosed  = "registration is currently closed"
	msgNotOnRoster         = "you are not registered to this panel"
	msgAlreadyRegistered   = "you already hold a booked slot"
	msgSlotTaken           = "this slot has already been booked"
	msgPanelFull           = "this panel has no remaining capacity"
	msgInvalidRegistration = "invalid registration request"
)

type Handler struct {
	useCase RegisterSlotUseCase
	logger  Logger
}

func NewHandler(useCase RegisterSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/registrations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /registrations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// The registering student is the authenticated caller
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /registrations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &registerSlot.Request{
		StudentID: studentID,
		PanelID:   req.PanelID,
		SlotID:    req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, registerSlot.ErrValidation):
			h.logger.Warn("POST /registrations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRegistration)

		case errors.Is(err, registerSlot.ErrStudentNotFound):
			h.logger.Warn("POST /registrations - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, registerSlot.ErrPanelNotFound):
			h.logger.Warn("POST /registrations - Panel not found: panel_id=%d", req.PanelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		case errors.Is(err, registerSlot.ErrSlotNotFound):
			h.logger.Warn("POST /registrations - Slot not found: panel_id=%d, slot_id=%d",
				req.PanelID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, registerSlot.ErrRegistrationClosed):
			h.logger.Warn("POST /registrations - Registration closed: student_id=%d", studentID)
			handlers.RespondForbidden(w, msgRegistrationClosed)

		case errors.Is(err, registerSlot.ErrNotOnRoster):
			h.logger.Warn("POST /registrations - Not on roster: student_id=%d, panel_id=%d",
				studentID, req.PanelID)
			handlers.RespondForbidden(w, msgNotOnRoster)

		case errors.Is(err, registerSlot.ErrAlreadyRegistered):
			h.logger.Warn("POST /registrations - Already registered: student_id=%d", studentID)
			handlers.RespondConflict(w, msgAlreadyRegistered)

		case errors.Is(err, registerSlot.ErrSlotTaken):
			h.logger.Warn("POST /registrations - Slot taken: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, registerSlot.ErrPanelFull):
			h.logger.Warn("POST /registrations - Panel full: panel_id=%d", req.PanelID)
			handlers.RespondConflict(w, msgPanelFull)

		default:
			h.logger.Error("POST /registrations - Failed to register: student_id=%d, slot_id=%d, error=%v",
				studentID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /registrations - Registered: student_id=%d, panel_id=%d, slot_id=%d",
		studentID, req.PanelID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
