package models

import (
	"time"
)

// Article is a journal entry on the public site
type Article struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Slug        string     `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Excerpt     string     `json:"excerpt" gorm:"size:500"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	CoverImage  string     `json:"cover_image" gorm:"size:500"`
	AuthorID    uint       `json:"author_id" gorm:"not null"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Author StaffUser `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Article) TableName() string {
	return "articles"
}
