package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stembank/stembank/internal/apperr"
)

// Handler exposes account creation and the cookie-based login flow.
type Handler struct {
	svc          *Service
	secureCookie bool
}

func NewHandler(svc *Service, secureCookie bool) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/create-account", h.CreateAccount)
	api.POST("/login", h.Login)
}

type createAccountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	HospitalID *int64 `json:"hospitalId"`
}

func (h *Handler) CreateAccount(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "username, password and role are required")
	}

	if _, err := h.svc.CreateAccount(c.Request().Context(), req.Username, req.Password, req.Role, req.HospitalID); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "account created successfully"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the session token as an httpOnly,
// sameSite=strict cookie. No cookie is set on failure.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	token, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "login successful"})
}
