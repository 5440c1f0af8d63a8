package create_panel

import (
	"errors"
	"net/http"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "panel name and a positive capacity are required"
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

// Handle POST /api/v1/panels
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePanelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /panels - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, panels.ErrInvalidInput):
			h.logger.Warn("POST /panels - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, panels.ErrStudentNotFound):
			h.logger.Warn("POST /panels - Unknown roster student: %v", err)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("POST /panels - Failed to create panel: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /panels - Panel created: panel_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
