// Package service composes the store, moderation and metrics into the
// operations the server and CLI expose.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/bizhubhq/bizhub/internal/metrics"
	"github.com/bizhubhq/bizhub/internal/models"
	"github.com/bizhubhq/bizhub/internal/moderation"
	"github.com/google/uuid"
)

// MaxImagesPerListing caps photo uploads per submission.
const MaxImagesPerListing = 5

// imageBucket is the blob bucket listing photos are stored in.
const imageBucket = "images"

// ListingStore is the subset of the db client the listing pipeline needs.
type ListingStore interface {
	InsertBusiness(ctx context.Context, b models.Business) (*models.Business, error)
	StoreImage(ctx context.Context, bucket, path, contentType string, content []byte) (string, error)
}

// Moderator screens a submission. Satisfied by *moderation.Evaluator.
type Moderator interface {
	Evaluate(ctx context.Context, name, description, category string) moderation.Verdict
}

// ImageUpload is one photo attached to a submission.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Submission is a draft listing as received from the form.
type Submission struct {
	Name        string
	Description string
	Category    string
	Address     string
	Phone       string
	Email       string
	Images      []ImageUpload
}

// RejectionError reports a submission the moderator declined. The reason is
// surfaced verbatim so the submitter can revise content.
type RejectionError struct {
	Verdict moderation.Verdict
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("Submission rejected by AI: %s (Score: %d)", e.Verdict.Reason, e.Verdict.Score)
}

// ListingService runs the submission pipeline: moderate, upload photos,
// persist.
type ListingService struct {
	store     ListingStore
	moderator Moderator
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewListingService creates a listing service. collector may be nil.
func NewListingService(store ListingStore, moderator Moderator, collector *metrics.Collector, logger *slog.Logger) *ListingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingService{
		store:     store,
		moderator: moderator,
		collector: collector,
		logger:    logger,
	}
}

// Submit screens and persists one listing. A declined verdict returns
// *RejectionError and nothing is persisted.
func (s *ListingService) Submit(ctx context.Context, sub Submission) (*models.Business, error) {
	start := time.Now()
	verdict := s.moderator.Evaluate(ctx, sub.Name, sub.Description, sub.Category)
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpModeration, time.Since(start))
	}

	if !verdict.Approved {
		s.logger.Info("submission rejected",
			"name", sub.Name,
			"score", verdict.Score,
			"reason", verdict.Reason,
		)
		return nil, &RejectionError{Verdict: verdict}
	}

	images := sub.Images
	if len(images) > MaxImagesPerListing {
		images = images[:MaxImagesPerListing]
	}

	var imageURLs []string
	for _, img := range images {
		name := uuid.New().String() + path.Ext(img.Filename)
		url, err := s.store.StoreImage(ctx, imageBucket, "listings/"+name, img.ContentType, img.Content)
		if err != nil {
			// A lost photo should not lose the listing.
			s.logger.Warn("image upload failed, skipping", "filename", img.Filename, "error", err)
			continue
		}
		imageURLs = append(imageURLs, url)
	}

	business, err := s.store.InsertBusiness(ctx, models.Business{
		Name:               sub.Name,
		Description:        sub.Description,
		Category:           sub.Category,
		Address:            sub.Address,
		Phone:              sub.Phone,
		Email:              sub.Email,
		ImageURLs:          imageURLs,
		ModerationScore:    verdict.Score,
		ModerationApproved: verdict.Approved,
		ModerationReason:   verdict.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("persist listing: %w", err)
	}

	s.logger.Info("listing published", "name", business.Name, "score", verdict.Score)
	return business, nil
}
