package add_students

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPanelID     = "invalid panel ID"
	msgInvalidInput       = "studentIds is required"
	msgPanelNotFound      = "panel not found"
	msgStudentNotFound    = "student not found"
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

// Handle POST /api/v1/panels/{panelId}/students
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /panels/{id}/students - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	var req models.AddStudentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /panels/{id}/students - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddStudents(r.Context(), panelID, &req)
	if err != nil {
		switch {
		case errors.Is(err, panels.ErrInvalidInput):
			h.logger.Warn("POST /panels/{id}/students - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, panels.ErrPanelNotFound):
			h.logger.Warn("POST /panels/{id}/students - Panel not found: panel_id=%d", panelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		case errors.Is(err, panels.ErrStudentNotFound):
			h.logger.Warn("POST /panels/{id}/students - Unknown student: panel_id=%d, error=%v", panelID, err)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("POST /panels/{id}/students - Failed to add students: panel_id=%d, error=%v", panelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /panels/{id}/students - Roster extended: panel_id=%d, roster_size=%d",
		panelID, len(result.StudentIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
