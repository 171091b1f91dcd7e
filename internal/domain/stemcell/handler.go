package stemcell

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
	api.POST("/stem-cells/assign", h.Assign)
}

type assignRequest struct {
	PatientID  int64 `json:"patientId"`
	StemCellID int64 `json:"stemCellId"`
}

func (h *Handler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId and stemCellId are required")
	}

	a, err := h.svc.Assign(c.Request().Context(), req.PatientID, req.StemCellID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	return c.JSON(http.StatusOK, a)
}
