package handler

import (
	"context"  // context with timeout for DB calls
	"errors"   // sentinel comparisons
	"net/http" // HTTP status codes
	"time"     // DB call timeouts

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/naomimt/TravelMate/internal/config"     // app configuration
	"github.com/naomimt/TravelMate/internal/repository" // DB repositories
	"github.com/naomimt/TravelMate/internal/utils"      // hashing and token issuing
)

// AuthHandler bundles dependencies for the register and login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResp is the payload of both auth endpoints: the account plus a bearer
// token valid for the configured lifetime (7 days by default).
type authResp struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Register creates an account with the fixed "user" role and returns a
// token immediately so the client is logged in after signup.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Missing required fields: name, email, password")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, "user", h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return utils.Fail(c, http.StatusBadRequest, "Email already registered")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to register user")
	}

	token, err := utils.IssueToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLDays)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to register user")
	}
	return utils.Created(c, http.StatusCreated, "User registered successfully", authResp{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token,
	})
}

// Login verifies credentials and issues a fresh token.  Unknown email and
// wrong password are deliberately indistinguishable in both status and body,
// so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Missing required fields: email, password")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to login")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := utils.IssueToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLDays)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to login")
	}
	return utils.Created(c, http.StatusOK, "Login successful", authResp{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token,
	})
}
