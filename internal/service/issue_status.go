package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/domain/model"
)

// IssueStatusServiceOptions groups dependencies for IssueStatusService.
type IssueStatusServiceOptions struct {
	Jobs core.IssueJobRepository
	// Cache is optional; without it every lookup hits the database.
	Cache  core.StatusCacheRepository
	Logger *slog.Logger
}

// IssueStatusService computes the derived per-(user, listing) issue status
// from the job rows: pending if any job is pending, else failed if any job
// failed, else success, else none when no issuance was ever attempted.
type IssueStatusService struct {
	jobs   core.IssueJobRepository
	cache  core.StatusCacheRepository
	logger *slog.Logger
}

// NewIssueStatusService constructs an IssueStatusService.
func NewIssueStatusService(opts IssueStatusServiceOptions) (*IssueStatusService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("issue job repository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IssueStatusService{jobs: opts.Jobs, cache: opts.Cache, logger: logger}, nil
}

// Status returns the aggregate issue status for the pair, consulting the
// cache first. Cache failures degrade to a database read.
func (s *IssueStatusService) Status(
	ctx context.Context,
	userID, listingID string,
) (model.IssueStatus, error) {
	if s.cache != nil {
		status, ok, err := s.cache.Get(ctx, userID, listingID)
		if err != nil {
			s.logger.WarnContext(ctx, "issue status cache read failed",
				"user_id", userID, "listing_id", listingID, "error", err)
		} else if ok {
			return status, nil
		}
	}

	statuses, err := s.jobs.StatusesForPair(ctx, userID, listingID)
	if err != nil {
		return model.IssueStatusNone, err
	}
	status := model.AggregateIssueStatus(statuses)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, listingID, status); err != nil {
			s.logger.WarnContext(ctx, "issue status cache write failed",
				"user_id", userID, "listing_id", listingID, "error", err)
		}
	}
	return status, nil
}
