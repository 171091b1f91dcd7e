package donor

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stembank/stembank/internal/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/getPhoneNumbers", h.GetPhoneNumbers)
}

func (h *Handler) GetPhoneNumbers(c echo.Context) error {
	entries, err := h.svc.PhoneNumbers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	return c.JSON(http.StatusOK, entries)
}
