package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizhubhq/bizhub/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// DefaultSearchLimit caps directory search results.
const DefaultSearchLimit = 5

// SearchBusinesses performs a case-insensitive substring search over the
// name and description fields. Results are capped at limit
// (DefaultSearchLimit when limit <= 0).
func (c *Client) SearchBusinesses(ctx context.Context, query string, limit int) ([]models.BusinessSummary, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	sql := `
		SELECT name, description, category, address, phone, email
		FROM business
		WHERE string::lowercase(name) CONTAINS $q
		   OR string::lowercase(description) CONTAINS $q
		LIMIT $limit
	`

	results, err := surrealdb.Query[[]models.BusinessSummary](ctx, c.db, sql, map[string]any{
		"q":     strings.ToLower(query),
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search businesses: %w", wrapQueryError(err))
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.BusinessSummary{}, nil
}

// InsertBusiness creates a new business record and returns it.
func (c *Client) InsertBusiness(ctx context.Context, b models.Business) (*models.Business, error) {
	sql := `
		CREATE business SET
			name = $name,
			description = $description,
			category = $category,
			address = $address,
			phone = $phone,
			email = $email,
			image_urls = $image_urls,
			moderation_score = $moderation_score,
			moderation_approved = $moderation_approved,
			moderation_reason = $moderation_reason
		RETURN AFTER
	`

	imageURLs := b.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	results, err := surrealdb.Query[[]models.Business](ctx, c.db, sql, map[string]any{
		"name":                b.Name,
		"description":         b.Description,
		"category":            b.Category,
		"address":             b.Address,
		"phone":               b.Phone,
		"email":               b.Email,
		"image_urls":          imageURLs,
		"moderation_score":    b.ModerationScore,
		"moderation_approved": b.ModerationApproved,
		"moderation_reason":   b.ModerationReason,
	})
	if err != nil {
		return nil, fmt.Errorf("insert business: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("insert business: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// GetBusiness retrieves a business by ID. Returns ErrNotFound when missing.
func (c *Client) GetBusiness(ctx context.Context, id string) (*models.Business, error) {
	results, err := surrealdb.Query[[]models.Business](ctx, c.db, `
		SELECT * FROM type::record("business", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get business: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("get business %q: %w", id, ErrNotFound)
	}
	return &(*results)[0].Result[0], nil
}

// ListCategories returns all categories in display order.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	results, err := surrealdb.Query[[]models.Category](ctx, c.db, `
		SELECT * FROM category ORDER BY sort_order ASC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", wrapQueryError(err))
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.Category{}, nil
}

// InsertCategory creates a category. Duplicate names surface as ErrAlreadyExists.
func (c *Client) InsertCategory(ctx context.Context, name, icon string, sortOrder int) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE category SET name = $name, icon = $icon, sort_order = $sort_order
	`, map[string]any{
		"name":       name,
		"icon":       icon,
		"sort_order": sortOrder,
	})
	if err != nil {
		return fmt.Errorf("insert category: %w", wrapQueryError(err))
	}
	return nil
}

// StoreImage stores a blob and returns the URL path it is served under.
func (c *Client) StoreImage(ctx context.Context, bucket, path, contentType string, content []byte) (string, error) {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE image SET
			bucket = $bucket,
			path = $path,
			content_type = $content_type,
			content = $content
	`, map[string]any{
		"bucket":       bucket,
		"path":         path,
		"content_type": contentType,
		"content":      content,
	})
	if err != nil {
		return "", fmt.Errorf("store image: %w", wrapQueryError(err))
	}
	return fmt.Sprintf("/files/%s/%s", bucket, path), nil
}

// GetImage retrieves a stored blob. Returns ErrNotFound when missing.
func (c *Client) GetImage(ctx context.Context, bucket, path string) (*models.Image, error) {
	results, err := surrealdb.Query[[]models.Image](ctx, c.db, `
		SELECT * FROM image WHERE bucket = $bucket AND path = $path LIMIT 1
	`, map[string]any{"bucket": bucket, "path": path})
	if err != nil {
		return nil, fmt.Errorf("get image: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("get image %s/%s: %w", bucket, path, ErrNotFound)
	}
	return &(*results)[0].Result[0], nil
}
