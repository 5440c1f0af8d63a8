package slot_mappings

import (
	"net/http"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
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

// Handle GET /api/v1/slot-mappings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Mappings(r.Context())
	if err != nil {
		h.logger.Error("GET /slot-mappings - Failed to list mappings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
