package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Business represents a directory listing.
type Business struct {
	ID          surrealmodels.RecordID `json:"id,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Address     string                 `json:"address,omitempty"`
	Phone       string                 `json:"phone,omitempty"`
	Email       string                 `json:"email,omitempty"`
	ImageURLs   []string               `json:"image_urls,omitempty"`

	// Moderation verdict recorded at submission time.
	ModerationScore    int    `json:"moderation_score"`
	ModerationApproved bool   `json:"moderation_approved"`
	ModerationReason   string `json:"moderation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusinessSummary is the projection returned by directory search.
// Matches the fields the assistant needs to answer questions about a listing.
type BusinessSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}
