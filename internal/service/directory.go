package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizhubhq/bizhub/internal/metrics"
	"github.com/bizhubhq/bizhub/internal/models"
)

// DirectoryStore is the read side of the db client.
type DirectoryStore interface {
	SearchBusinesses(ctx context.Context, query string, limit int) ([]models.BusinessSummary, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// DirectoryService serves directory reads.
type DirectoryService struct {
	store     DirectoryStore
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewDirectoryService creates a directory service. collector may be nil.
func NewDirectoryService(store DirectoryStore, collector *metrics.Collector, logger *slog.Logger) *DirectoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryService{
		store:     store,
		collector: collector,
		logger:    logger,
	}
}

// Search finds listings matching the query.
func (s *DirectoryService) Search(ctx context.Context, query string, limit int) ([]models.BusinessSummary, error) {
	start := time.Now()
	results, err := s.store.SearchBusinesses(ctx, query, limit)
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpDBSearch, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	s.logger.Debug("directory search", "query", query, "results", len(results))
	return results, nil
}

// Categories lists all categories in display order.
func (s *DirectoryService) Categories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
