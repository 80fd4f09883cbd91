package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Image is a stored listing photo. Content is held inline; the server
// serves it back under /files/<bucket>/<path>.
type Image struct {
	ID          surrealmodels.RecordID `json:"id,omitempty"`
	Bucket      string                 `json:"bucket"`
	Path        string                 `json:"path"`
	ContentType string                 `json:"content_type"`
	Content     []byte                 `json:"content"`
	CreatedAt   time.Time              `json:"created_at"`
}
