package get_panel_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots"
)

const (
	msgInvalidPanelID = "invalid panel ID"
	msgPanelNotFound  = "panel not found"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/panels/{panelId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /panels/{id}/slots - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	result, err := h.service.PanelSlots(r.Context(), panelID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrPanelNotFound):
			h.logger.Warn("GET /panels/{id}/slots - Panel not found: panel_id=%d", panelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		default:
			h.logger.Error("GET /panels/{id}/slots - Failed to get slots: panel_id=%d, error=%v", panelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
