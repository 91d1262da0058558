package models

import "time"

// Note is a shared file record. UploadedBy carries the uploader's
// username by value, not a foreign key, so attribution survives account
// deletion.
type Note struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Filename   string    `json:"filename" gorm:"size:255;not null;index"`
	Title      string    `json:"title,omitempty" gorm:"size:255"`
	Content    string    `json:"content,omitempty" gorm:"type:text"`
	UploadedBy string    `json:"uploaded_by" gorm:"size:60;index"`
	CreatedAt  time.Time `json:"created_at"`
}
