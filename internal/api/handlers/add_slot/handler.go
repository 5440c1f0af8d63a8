package add_slot

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
	msgInvalidInput       = "date must be YYYY-MM-DD and start time must be before end time"
	msgPanelNotFound      = "panel not found"
	msgSlotOverlaps       = "slot overlaps an existing slot of this panel"
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

// Handle POST /api/v1/panels/{panelId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /panels/{id}/slots - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	var req models.AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /panels/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSlot(r.Context(), panelID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /panels/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrPanelNotFound):
			h.logger.Warn("POST /panels/{id}/slots - Panel not found: panel_id=%d", panelID)
			handlers.RespondNotFound(w, msgPanelNotFound)

		case errors.Is(err, slots.ErrSlotOverlaps):
			h.logger.Warn("POST /panels/{id}/slots - Overlapping slot: panel_id=%d, date=%s, interval=%s-%s",
				panelID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotOverlaps)

		default:
			h.logger.Error("POST /panels/{id}/slots - Failed to add slot: panel_id=%d, error=%v", panelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /panels/{id}/slots - Slot added: panel_id=%d, slot_id=%d", panelID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
