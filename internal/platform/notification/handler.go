package notification

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler exposes the bulk send endpoint.
type Handler struct {
	mgr    *Manager
	logger zerolog.Logger
}

func NewHandler(mgr *Manager, logger zerolog.Logger) *Handler {
	return &Handler{mgr: mgr, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sendMessage", h.SendMessage)
}

type sendMessageRequest struct {
	PhoneNumbers []string `json:"phoneNumbers"`
	Message      string   `json:"message"`
}

// SendMessage fans the message out to every phone number. Any per-recipient
// failure fails the whole request; the failure detail is logged, never
// returned.
func (h *Handler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil || len(req.PhoneNumbers) == 0 || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phoneNumbers and message are required")
	}

	result, err := h.mgr.BulkSend(c.Request().Context(), req.PhoneNumbers, req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error sending messages")
	}
	if len(result.Failures) > 0 {
		for _, f := range result.Failures {
			h.logger.Error().Str("recipient", f.Recipient).Str("reason", f.Error).Msg("message send failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error sending messages")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Sent %d messages successfully", result.Sent),
		"sent":    result.Sent,
	})
}
