package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/middlewares"
	"github.com/Sumanth789856/Get-Updated/registry"
	"github.com/Sumanth789856/Get-Updated/sessions"
)

type AuthHandler struct {
	accounts *registry.Accounts
	revoked  sessions.RevocationStore
	secret   string
	tokenTTL time.Duration
	log      *zap.Logger
}

func NewAuthHandler(accounts *registry.Accounts, revoked sessions.RevocationStore, secret string, ttl time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, revoked: revoked, secret: secret, tokenTTL: ttl, log: log}
}

func (h *AuthHandler) signJWT(sub uint, username, role string) (string, error) {
	now := time.Now()
	claims := middlewares.Claims{
		Sub:      sub,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.secret))
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	// role is always student on the public path
	u, err := h.accounts.Register(req.Username, req.Email, req.Password)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": u.ID, "username": u.Username, "role": u.Role})
}

// POST /auth/login — requires all three of username, email and password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	u, err := h.accounts.Verify(req.Username, req.Email, req.Password)
	if err != nil {
		return registryError(c, err)
	}

	// best-effort: a failed timestamp update does not block the login
	if err := h.accounts.TouchLastLogin(u.ID, time.Now()); err != nil {
		h.log.Warn("last_login update failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	token, err := h.signJWT(u.ID, u.Username, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": u.ID, "username": u.Username, "role": u.Role},
	})
}

// POST /auth/logout — revokes the presented token until its expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, _ := c.Get("claims").(*middlewares.Claims)
	if claims != nil && h.revoked != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := h.revoked.Revoke(c.Request().Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			// the client discards its token either way
			h.log.Warn("token revocation failed", zap.String("jti", claims.ID), zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}
