package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/middleware"
	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/service"
	"github.com/invisio/invisio-backend/internal/utils"
)

// AuthHandler serves signup, login, logout and the profile endpoint.
type AuthHandler struct {
	Creds     *service.Credentials
	Blacklist *service.Blacklist
}

func NewAuthHandler(creds *service.Credentials, bl *service.Blacklist) *AuthHandler {
	return &AuthHandler{Creds: creds, Blacklist: bl}
}

// ----- DTOs -----

type signupReq struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	CompanyName string `json:"companyName" validate:"required"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPart struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
}

// Signup registers an account. The email is stored exactly as sent.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindValid(c, &req, "Invalid signup data."); err != nil {
		return err
	}
	acc, err := h.Creds.Register(c.Request().Context(), req.FullName, req.Email, req.Password, req.CompanyName)
	if errors.Is(err, service.ErrAlreadyExists) {
		return fail(http.StatusConflict, model.CodeEmailExists, "User with this email already exists.")
	}
	if errors.Is(err, service.ErrPasswordTooLong) {
		return fail(http.StatusBadRequest, model.CodeValidation, "Password must be at most 72 bytes.")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":    model.CodeOK,
		"message": "User registered successfully.",
		"userId":  acc.ID,
	})
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValid(c, &req, "Invalid login data."); err != nil {
		return err
	}
	tok, _, err := h.Creds.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return fail(http.StatusUnauthorized, model.CodeUnauthorized, "Invalid credentials.")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "token": tok.Token})
}

// Logout denylists the bearer token, if any. The token is not verified:
// garbage is ignored and an already invalid token is harmless to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.BearerToken(c); token != "" {
		if _, err := h.Blacklist.Revoke(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "message": "Logged out successfully."})
}

// GetMe echoes the identity carried by the verified token.
func (h *AuthHandler) GetMe(c echo.Context) error {
	cl, ok := claimsOf(c)
	if !ok {
		return fail(http.StatusUnauthorized, model.CodeUnauthorized, "User not authenticated or ID not found in token.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":    model.CodeOK,
		"message": "Access granted.",
		"user": userPart{
			ID:          cl.Subject,
			Email:       cl.Email,
			FullName:    cl.Name,
			CompanyName: cl.Org,
		},
	})
}

func claimsOf(c echo.Context) (*utils.Claims, bool) { return middleware.Claims(c) }
