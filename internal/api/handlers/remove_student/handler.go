package remove_student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels"
)

const (
	msgInvalidPanelID   = "invalid panel ID"
	msgInvalidStudentID = "invalid student ID"
	msgPanelNotFound    = "panel not found"
	msgStudentNotFound  = "student not found"
	msgNotOnRoster      = "student is not on the panel roster"
)

type Handler struct {
	service PanelService
	logger  Logger
}

func NewHandler(service PanelService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/panels/{panelId}/students/{studentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /panels/{id}/students/{sid} - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /panels/{id}/students/{sid} - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	if err := h.service.RemoveStudent(r.Context(), panelID, studentID); err != nil {
		switch {
		case errors.Is(err, panels.ErrPanelNotFound):
			h.logger.Warn("DELETE /panels/{id}/students/{sid} - Panel not found: panel_id=%d", panelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		case errors.Is(err, panels.ErrStudentNotFound):
			h.logger.Warn("DELETE /panels/{id}/students/{sid} - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, panels.ErrStudentNotOnRoster):
			h.logger.Warn("DELETE /panels/{id}/students/{sid} - Not on roster: panel_id=%d, student_id=%d",
				panelID, studentID)
			handlers.RespondNotFound(w, msgNotOnRoster)

		default:
			h.logger.Error("DELETE /panels/{id}/students/{sid} - Failed to remove student: panel_id=%d, student_id=%d, error=%v",
				panelID, studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /panels/{id}/students/{sid} - Student removed: panel_id=%d, student_id=%d",
		panelID, studentID)
	w.WriteHeader(http.StatusNoContent)
}
