package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/server/auth"
	"github.com/dmitrijs2005/credkeeper/internal/server/services"
	"github.com/dmitrijs2005/credkeeper/internal/validation"
	"github.com/labstack/echo/v4"
)

// AuthService is the part of services.UserService the handlers need.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}

// TokenVerifier resolves a token back to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Handler holds dependencies for the auth endpoints.
type Handler struct {
	svc    AuthService
	cookie auth.CookieOptions
	now    func() time.Time
}

func NewHandler(svc AuthService, cookie auth.CookieOptions) *Handler {
	return &Handler{svc: svc, cookie: cookie, now: time.Now}
}

// SignUp handles POST /api/sign-up.
func (h *Handler) SignUp(c echo.Context) error {
	req, err := h.bindCredentials(c)
	if err != nil {
		return err
	}

	res, err := h.svc.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie.Cookie(res.Token, h.now()))
	return c.JSON(http.StatusOK, authResponse{Message: msgRegistered, User: res.User})
}

// Login handles POST /api/login.
func (h *Handler) Login(c echo.Context) error {
	req, err := h.bindCredentials(c)
	if err != nil {
		return err
	}

	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie.Cookie(res.Token, h.now()))
	return c.JSON(http.StatusOK, authResponse{Message: msgLoggedIn, User: res.User})
}

// Logout drops the cookie. Tokens are stateless, so nothing is revoked.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie.Expired())
	return c.JSON(http.StatusOK, messageResponse{Message: msgLoggedOut})
}

// Me echoes the id of the authenticated caller. Requires RequireAuth.
func (h *Handler) Me(c echo.Context) error {
	var resp meResponse
	resp.User.ID = UserID(c)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindCredentials(c echo.Context) (*validation.Credentials, error) {
	req := &validation.Credentials{}
	if err := c.Bind(req); err != nil {
		return nil, errBadBody
	}
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	return req, nil
}
