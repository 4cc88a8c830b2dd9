package domain

import (
	"time"

	"github.com/google/uuid"
)

type BlogContentType string

const (
	BlogContentPlain    BlogContentType = "plain"
	BlogContentMarkdown BlogContentType = "markdown"
	BlogContentHTML     BlogContentType = "html"
)

func ParseBlogContentType(value string) (BlogContentType, bool) {
	switch BlogContentType(value) {
	case "":
		return BlogContentPlain, true
	case BlogContentPlain, BlogContentMarkdown, BlogContentHTML:
		return BlogContentType(value), true
	default:
		return "", false
	}
}

type Blog struct {
	ID          int64           `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Content     string          `db:"content" json:"content"`
	AuthorID    uuid.UUID       `db:"author_id" json:"author_id"`
	AuthorName  *string         `db:"author_name" json:"author_name,omitempty"`
	ContentType BlogContentType `db:"content_type" json:"content_type"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type BlogMedia struct {
	URL         string `json:"url"`
	ObjectName  string `json:"object_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
