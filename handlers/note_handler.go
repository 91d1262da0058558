package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/registry"
)

type NoteHandler struct {
	notes *registry.Notes
	log   *zap.Logger
}

func NewNoteHandler(notes *registry.Notes, log *zap.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, log: log}
}

// GET /notes
func (h *NoteHandler) List(c echo.Context) error {
	list, err := h.notes.List(currentActor(c))
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// POST /notes — multipart upload, field name "file".
func (h *NoteHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FILE"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "UNREADABLE_FILE"})
	}
	defer src.Close()

	note, err := h.notes.Upload(c.Request().Context(), currentActor(c), fh.Filename, src)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

// GET /notes/:id/download
func (h *NoteHandler) Download(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	note, rc, err := h.notes.Open(c.Request().Context(), currentActor(c), uint(id))
	if err != nil {
		return registryError(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, note.Filename))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}

// DELETE /notes/:id. A missing id responds exactly like a removed one.
func (h *NoteHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	if err := h.notes.Delete(c.Request().Context(), currentActor(c), uint(id)); err != nil {
		return registryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type editNoteReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PUT /notes/:id
func (h *NoteHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	var req editNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	note, err := h.notes.Edit(currentActor(c), uint(id), req.Title, req.Content)
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

// GET /notes/search?q=
func (h *NoteHandler) Search(c echo.Context) error {
	results, err := h.notes.Search(currentActor(c), c.QueryParam("q"))
	if err != nil {
		return registryError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}
