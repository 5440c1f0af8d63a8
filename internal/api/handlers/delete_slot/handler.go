package delete_slot

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
	msgInvalidSlotID  = "invalid slot ID"
	msgSlotNotFound   = "slot not found"
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

// Handle DELETE /api/v1/panels/{panelId}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	panelID, err := strconv.ParseInt(vars["panelId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /panels/{id}/slots/{sid} - Invalid panel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPanelID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /panels/{id}/slots/{sid} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.Delete(r.Context(), panelID, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /panels/{id}/slots/{sid} - Slot not found: panel_id=%d, slot_id=%d",
				panelID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("DELETE /panels/{id}/slots/{sid} - Failed to delete slot: panel_id=%d, slot_id=%d, error=%v",
				panelID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /panels/{id}/slots/{sid} - Slot deleted: panel_id=%d, slot_id=%d, released=%d",
		panelID, slotID, result.ReleasedStudents)
	handlers.RespondJSON(w, http.StatusOK, result)
}
