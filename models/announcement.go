package models

import "time"

type Announcement struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Content string    `json:"content" gorm:"type:text;not null"`
	Author  string    `json:"author" gorm:"size:60"`
	Date    time.Time `json:"date"`
}
