package mark_completed

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	markCompleted "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/mark_completed"
)

const (
	msgInvalidStudentID = "invalid student ID"
	msgStudentNotFound  = "student not found"
)

type Handler struct {
	useCase MarkCompletedUseCase
	logger  Logger
}

func NewHandler(useCase MarkCompletedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/students/{studentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /students/{id}/complete - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &markCompleted.Request{StudentID: studentID})
	if err != nil {
		switch {
		case errors.Is(err, markCompleted.ErrValidation):
			h.logger.Warn("POST /students/{id}/complete - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStudentID)

		case errors.Is(err, markCompleted.ErrStudentNotFound):
			h.logger.Warn("POST /students/{id}/complete - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("POST /students/{id}/complete - Failed to mark completed: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /students/{id}/complete - Completed: student_id=%d, released=%v",
		studentID, result.Released)
	handlers.RespondJSON(w, http.StatusOK, result)
}
