package models

import (
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Category is a directory category shown in the listing form.
type Category struct {
	ID    surrealmodels.RecordID `json:"id,omitempty"`
	Name  string                 `json:"name"`
	Icon  string                 `json:"icon,omitempty"`
	Order int                    `json:"sort_order"`
}
