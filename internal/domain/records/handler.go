package records

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stembank/stembank/internal/apperr"
)

// Handler exposes the table-generic routes. Dedicated routes (dashboard,
// login, messaging) are registered as static paths and take precedence over
// the :table parameter in echo's router.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/:table", h.Get)
	api.POST("/:table", h.Create)
	api.PUT("/:table", h.Update)
	api.DELETE("/:table", h.Delete)
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
}

// Get returns a single record when the id query parameter is present and the
// full table otherwise.
func (h *Handler) Get(c echo.Context) error {
	table := c.Param("table")
	rawID := c.QueryParam("id")

	if rawID == "" {
		recs, err := h.svc.List(c.Request().Context(), table)
		if err != nil {
			return httpError(err)
		}
		if recs == nil {
			recs = []Record{}
		}
		return c.JSON(http.StatusOK, recs)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}
	rec, err := h.svc.Get(c.Request().Context(), table, c.QueryParam("idField"), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Create(c echo.Context) error {
	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil || len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "data is required")
	}

	id, err := h.svc.Create(c.Request().Context(), c.Param("table"), fields)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"insertId": id})
}

func (h *Handler) Update(c echo.Context) error {
	rawID := c.QueryParam("id")
	if rawID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id and data are required")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil || len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id and data are required")
	}

	if err := h.svc.Update(c.Request().Context(), c.Param("table"), c.QueryParam("idField"), id, fields); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
}

func (h *Handler) Delete(c echo.Context) error {
	rawID := c.QueryParam("id")
	if rawID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}

	if err := h.svc.Delete(c.Request().Context(), c.Param("table"), c.QueryParam("idField"), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}
