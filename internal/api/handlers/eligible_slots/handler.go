package eligible_slots

import (
	"errors"
	"net/http"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/middleware"
	eligibleSlots "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/eligible_slots"
)

const (
	msgMissingUserID   = "missing user ID"
	msgStudentNotFound = "student not found"
)

type Handler struct {
	useCase EligibleSlotsUseCase
	logger  Logger
}

func NewHandler(useCase EligibleSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/me/eligible-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/me/eligible-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &eligibleSlots.Request{StudentID: studentID})
	if err != nil {
		switch {
		case errors.Is(err, eligibleSlots.ErrStudentNotFound):
			h.logger.Warn("GET /students/me/eligible-slots - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("GET /students/me/eligible-slots - Failed to build view: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
