package bulk_add_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPanelID     = "invalid panel ID"
	msgInvalidInput       = "rows is required and limited per import"
	msgPanelNotFound      = "panel not found"
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

// Handle POST /api/v1/panels/{panelId}/slots/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /panels/{id}/slots/bulk - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	var req models.BulkAddRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /panels/{id}/slots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkAdd(r.Context(), panelID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /panels/{id}/slots/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrPanelNotFound):
			h.logger.Warn("POST /panels/{id}/slots/bulk - Panel not found: panel_id=%d", panelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		default:
			h.logger.Error("POST /panels/{id}/slots/bulk - Failed to import slots: panel_id=%d, error=%v", panelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /panels/{id}/slots/bulk - Imported: panel_id=%d, added=%d, dropped=%d",
		panelID, len(result.Added), result.Dropped)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
