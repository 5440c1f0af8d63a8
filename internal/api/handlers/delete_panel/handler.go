package delete_panel

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels"
)

const (
	msgInvalidPanelID = "invalid panel ID"
	msgPanelNotFound  = "panel not found"
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

// Handle DELETE /api/v1/panels/{panelId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /panels/{id} - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	result, err := h.service.Delete(r.Context(), panelID)
	if err != nil {
		switch {
		case errors.Is(err, panels.ErrPanelNotFound):
			h.logger.Warn("DELETE /panels/{id} - Panel not found: panel_id=%d", panelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		default:
			h.logger.Error("DELETE /panels/{id} - Failed to delete panel: panel_id=%d, error=%v", panelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /panels/{id} - Panel deleted: panel_id=%d, released=%d",
		panelID, result.ReleasedStudents)
	handlers.RespondJSON(w, http.StatusOK, result)
}
