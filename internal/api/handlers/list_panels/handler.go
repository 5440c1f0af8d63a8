package list_panels

import (
	"net/http"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
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

// Handle GET /api/v1/panels
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /panels - Failed to list panels: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
