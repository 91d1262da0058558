package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/export"
	"github.com/Sumanth789856/Get-Updated/registry"
)

type AnnouncementHandler struct {
	anns *registry.Announcements
	log  *zap.Logger
}

func NewAnnouncementHandler(anns *registry.Announcements, log *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{anns: anns, log: log}
}

// GET /announcements
func (h *AnnouncementHandler) List(c echo.Context) error {
	list, err := h.anns.List(currentActor(c))
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type createAnnouncementReq struct {
	Content string `json:"content"`
}

// POST /announcements — clients should GET after a successful POST;
// retried submissions insert again.
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req createAnnouncementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	ann, err := h.anns.Create(currentActor(c), req.Content)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusCreated, ann)
}

// DELETE /announcements/:id
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	if err := h.anns.Delete(currentActor(c), uint(id)); err != nil {
		return registryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /announcements/feed.ics
func (h *AnnouncementHandler) Feed(c echo.Context) error {
	list, err := h.anns.List(currentActor(c))
	if err != nil {
		return registryError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="announcements.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(export.AnnouncementsCalendar(list)))
}
