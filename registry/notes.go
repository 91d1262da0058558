package registry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sumanth789856/Get-Updated/models"
	"github.com/Sumanth789856/Get-Updated/policy"
	"github.com/Sumanth789856/Get-Updated/storage"
)

const searchLimit = 12

// Notes is the resource registry for shared file notes. Every mutation
// consults the policy evaluator before touching state; file bytes live
// in the blob store, keyed by filename.
type Notes struct {
	db    *gorm.DB
	blobs storage.Store
	log   *zap.Logger
}

func NewNotes(db *gorm.DB, blobs storage.Store, log *zap.Logger) *Notes {
	return &Notes{db: db, blobs: blobs, log: log}
}

// Upload stores the file bytes first, then inserts the row with the
// actor as owner. A blob write failure aborts with no row inserted.
// Duplicate filenames are permitted; each upload gets its own id.
func (n *Notes) Upload(ctx context.Context, actor policy.Actor, filename string, r io.Reader) (*models.Note, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, invalid("filename", "filename is required")
	}

	if err := n.blobs.Put(ctx, filename, r); err != nil {
		return nil, storageErr("store file", err)
	}

	note := models.Note{
		Filename:   filename,
		UploadedBy: actor.Username,
	}
	if err := n.db.Create(&note).Error; err != nil {
		return nil, storageErr("create note", err)
	}
	return &note, nil
}

// List returns every note in id order. All authenticated roles see the
// full list; there is no per-user visibility rule.
func (n *Notes) List(actor policy.Actor) ([]models.Note, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var notes []models.Note
	if err := n.db.Order("id ASC").Find(&notes).Error; err != nil {
		return nil, storageErr("list notes", err)
	}
	return notes, nil
}

// Open looks up a note and opens its backing blob for download.
func (n *Notes) Open(ctx context.Context, actor policy.Actor, id uint) (*models.Note, io.ReadCloser, error) {
	if !actor.Authenticated() {
		return nil, nil, ErrUnauthenticated
	}
	var note models.Note
	if err := n.db.First(&note, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storageErr("load note", err)
	}
	rc, err := n.blobs.Get(ctx, note.Filename)
	if err != nil {
		if err == storage.ErrNotExist {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storageErr("open file", err)
	}
	return &note, rc, nil
}

// Delete removes a note if the actor owns it or is teacher/admin. A
// missing id is a silent no-op. The backing blob is removed best-effort
// after the row: a failure there is logged, not surfaced.
func (n *Notes) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	var note models.Note
	if err := n.db.First(&note, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil // silent no-op
		}
		return storageErr("load note", err)
	}
	if !policy.Decide(policy.OpDeleteNote, actor, note.UploadedBy) {
		return ErrDenied
	}
	if err := n.db.Delete(&models.Note{}, id).Error; err != nil {
		return storageErr("delete note", err)
	}
	if err := n.blobs.Delete(ctx, note.Filename); err != nil {
		n.log.Warn("blob cleanup failed",
			zap.String("filename", note.Filename), zap.Error(err))
	}
	return nil
}

// Edit updates title and content in place. The owner or staff may
// edit; both fields must be non-empty after trimming.
func (n *Notes) Edit(actor policy.Actor, id uint, title, content string) (*models.Note, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	}
	if content == "" {
		fields["content"] = "content is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var note models.Note
	if err := n.db.First(&note, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, storageErr("load note", err)
	}
	if !policy.Decide(policy.OpEditNote, actor, note.UploadedBy) {
		return nil, ErrDenied
	}

	note.Title = title
	note.Content = content
	if err := n.db.Save(&note).Error; err != nil {
		return nil, storageErr("update note", err)
	}
	return &note, nil
}

// SearchResult is the display triple returned by Search.
type SearchResult struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// Search matches the query as a case-insensitive substring of the
// filename, capped at 12 results in id order. An empty query returns an
// empty result set, not an error.
func (n *Notes) Search(actor policy.Actor, q string) ([]SearchResult, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return []SearchResult{}, nil
	}

	var notes []models.Note
	pattern := "%" + strings.ToLower(q) + "%"
	err := n.db.Where("LOWER(filename) LIKE ?", pattern).
		Order("id ASC").Limit(searchLimit).Find(&notes).Error
	if err != nil {
		return nil, storageErr("search notes", err)
	}

	results := make([]SearchResult, 0, len(notes))
	for _, note := range notes {
		title := note.Title
		if title == "" {
			title = note.Filename
		}
		results = append(results, SearchResult{
			ID:      note.ID,
			Title:   title,
			Excerpt: fmt.Sprintf("uploaded by %s", note.UploadedBy),
		})
	}
	return results, nil
}
