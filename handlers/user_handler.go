package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/export"
	"github.com/Sumanth789856/Get-Updated/registry"
)

// UserHandler serves the admin account-management screens.
type UserHandler struct {
	accounts *registry.Accounts
	log      *zap.Logger
}

func NewUserHandler(accounts *registry.Accounts, log *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, log: log}
}

// GET /admin/users?q=&page=&size=
func (h *UserHandler) List(c echo.Context) error {
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 20)

	users, total, err := h.accounts.List(currentActor(c), c.QueryParam("q"), page, size)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  users,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /admin/users/export
func (h *UserHandler) Export(c echo.Context) error {
	users, err := h.accounts.All(currentActor(c))
	if err != nil {
		return registryError(c, err)
	}
	buf, filename, err := export.UsersWorkbook(users)
	if err != nil {
		h.log.Error("user export failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

type createAccountReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /admin/users/students
func (h *UserHandler) AddStudent(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	u, err := h.accounts.AddStudent(currentActor(c), req.Username, req.Email, req.Password)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// POST /admin/users/teachers
func (h *UserHandler) AddTeacher(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	u, err := h.accounts.AddTeacher(currentActor(c), req.Username, req.Email, req.Password)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// DELETE /admin/users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	if err := h.accounts.Delete(currentActor(c), uint(id)); err != nil {
		return registryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
