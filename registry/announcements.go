package registry

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sumanth789856/Get-Updated/models"
	"github.com/Sumanth789856/Get-Updated/policy"
)

// Announcements is the resource registry for the announcement board.
type Announcements struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAnnouncements(db *gorm.DB, log *zap.Logger) *Announcements {
	return &Announcements{db: db, log: log}
}

// Create posts an announcement as the actor. Content must be non-empty
// after trimming. Retried submissions are not deduplicated; the caller
// is expected to redirect-after-post.
func (r *Announcements) Create(actor policy.Actor, content string) (*models.Announcement, error) {
	if !policy.Decide(policy.OpCreateAnnouncement, actor, "") {
		return nil, deny(actor)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "content is required")
	}

	ann := models.Announcement{
		Content: content,
		Author:  actor.Username,
		Date:    time.Now(),
	}
	if err := r.db.Create(&ann).Error; err != nil {
		return nil, storageErr("create announcement", err)
	}
	return &ann, nil
}

// List returns all announcements, newest first.
func (r *Announcements) List(actor policy.Actor) ([]models.Announcement, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var anns []models.Announcement
	if err := r.db.Order("id DESC").Find(&anns).Error; err != nil {
		return nil, storageErr("list announcements", err)
	}
	return anns, nil
}

// Delete removes an announcement; teacher and admin only. A missing id
// is a silent no-op.
func (r *Announcements) Delete(actor policy.Actor, id uint) error {
	if !policy.Decide(policy.OpDeleteAnnouncement, actor, "") {
		return deny(actor)
	}
	var ann models.Announcement
	if err := r.db.First(&ann, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil // silent no-op
		}
		return storageErr("load announcement", err)
	}
	if err := r.db.Delete(&models.Announcement{}, id).Error; err != nil {
		return storageErr("delete announcement", err)
	}
	return nil
}
