// Package service contains the business logic of the issuance pipeline.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/domain/model"
)

// PayloadServiceOptions groups dependencies for PayloadService.
type PayloadServiceOptions struct {
	Signups core.SignupRepository
	Jobs    core.IssueJobRepository
	// StatusCache is optional; when set, the pair's cached issue status is
	// invalidated after new jobs are enqueued.
	StatusCache core.StatusCacheRepository
	Logger      *slog.Logger
	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

// PayloadService builds credential-issuance payloads for completed signups
// and enqueues them as pending jobs. This is the entry point both the admin
// issue/reissue action and the auto-trigger-on-completion hook call.
type PayloadService struct {
	signups core.SignupRepository
	jobs    core.IssueJobRepository
	cache   core.StatusCacheRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewPayloadService constructs a PayloadService.
func NewPayloadService(opts PayloadServiceOptions) (*PayloadService, error) {
	if opts.Signups == nil {
		return nil, errors.New("signup repository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("issue job repository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &PayloadService{
		signups: opts.Signups,
		jobs:    opts.Jobs,
		cache:   opts.StatusCache,
		logger:  logger,
		now:     now,
	}, nil
}

// BuildAndEnqueue creates one pending job for the listing and one per
// eligible tag of the given completed signup. The pair must resolve to
// exactly one completed signup; core.ErrNoCompletedSignup and
// core.ErrMultipleCompletedSignups propagate to the caller unenqueued.
func (s *PayloadService) BuildAndEnqueue(
	ctx context.Context,
	userID, listingID string,
) ([]*model.IssueJob, error) {
	signup, err := s.signups.CompletedSignup(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	return s.enqueueFor(ctx, signup)
}

// EnqueueOnCompletion is the auto-trigger hook called when an admin marks a
// signup completed. Listings in manual trigger mode are a no-op; auto
// listings enqueue exactly like BuildAndEnqueue.
func (s *PayloadService) EnqueueOnCompletion(
	ctx context.Context,
	userID, listingID string,
) ([]*model.IssueJob, error) {
	signup, err := s.signups.CompletedSignup(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if signup.TriggerMode != model.TriggerModeAuto {
		s.logger.InfoContext(ctx, "listing is manual-trigger, skipping auto issuance",
			"user_id", userID, "listing_id", listingID)
		return nil, nil
	}
	return s.enqueueFor(ctx, signup)
}

// SweepUnenqueued enqueues jobs for completed signups on auto-trigger
// listings that have none yet. It reconciles completions recorded while no
// worker was running. A failure on one signup is logged and does not stop
// the sweep. Returns the number of jobs enqueued.
func (s *PayloadService) SweepUnenqueued(ctx context.Context, limit int) (int, error) {
	signups, err := s.signups.UnenqueuedCompletions(ctx, limit)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, signup := range signups {
		jobs, err := s.enqueueFor(ctx, signup)
		if err != nil {
			s.logger.ErrorContext(ctx, "sweep enqueue failed",
				"user_id", signup.UserID,
				"listing_id", signup.ListingID,
				"error", err)
			continue
		}
		enqueued += len(jobs)
	}
	return enqueued, nil
}

func (s *PayloadService) enqueueFor(
	ctx context.Context,
	signup *model.CompletedSignup,
) ([]*model.IssueJob, error) {
	tags, err := s.signups.EligibleTags(ctx, signup.ListingID)
	if err != nil {
		return nil, err
	}

	reqs, err := s.buildRequests(signup, tags)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.CreateBatch(ctx, reqs)
	if err != nil {
		return nil, err
	}

	s.invalidateStatus(ctx, signup.UserID, signup.ListingID)

	s.logger.InfoContext(ctx, "issuance jobs enqueued",
		"user_id", signup.UserID,
		"listing_id", signup.ListingID,
		"jobs", len(jobs),
		"eligible_tags", len(tags))
	return jobs, nil
}

// buildRequests synthesizes the listing payload plus one payload per
// eligible tag.
func (s *PayloadService) buildRequests(
	signup *model.CompletedSignup,
	tags []model.IssueTag,
) ([]model.CreateJobRequest, error) {
	issuedAt := s.now()

	reqs := make([]model.CreateJobRequest, 0, len(tags)+1)

	listingPayload := s.payloadFor(signup, issuedAt, model.Achievement{
		ID:          signup.ListingID,
		Type:        model.AchievementTypeListing,
		Name:        signup.ListingTitle,
		Description: signup.ListingDescription,
	}, signup.ExpiryDays)
	req, err := toCreateRequest(signup, listingPayload)
	if err != nil {
		return nil, err
	}
	reqs = append(reqs, req)

	for _, tag := range tags {
		tagPayload := s.payloadFor(signup, issuedAt, model.Achievement{
			ID:          tag.ID,
			Type:        model.AchievementTypeTag,
			Name:        tag.Title,
			Description: tag.Description,
		}, tag.ExpiryDays)
		req, err := toCreateRequest(signup, tagPayload)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (s *PayloadService) payloadFor(
	signup *model.CompletedSignup,
	issuedAt time.Time,
	achievement model.Achievement,
	expiryDays *int,
) model.CredentialPayload {
	var validUntil *time.Time
	if expiryDays != nil {
		t := issuedAt.AddDate(0, 0, *expiryDays)
		validUntil = &t
	}
	return model.CredentialPayload{
		IssuerRefID: model.DeriveIssuerRefID(signup.UserID, achievement.ID, achievement.Name),
		HolderID:    signup.SubjectID,
		Claims: model.CredentialClaims{
			AwardedAt:  signup.CompletedAt,
			ValidFrom:  issuedAt,
			ValidUntil: validUntil,
			Subject: model.CredentialSubject{
				ID:    signup.SubjectID,
				Name:  signup.UserName,
				Email: signup.UserEmail,
			},
			Achievement: achievement,
		},
	}
}

func toCreateRequest(signup *model.CompletedSignup, payload model.CredentialPayload) (model.CreateJobRequest, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return model.CreateJobRequest{}, fmt.Errorf("marshal credential payload: %w", err)
	}
	return model.CreateJobRequest{
		UserID:    signup.UserID,
		ListingID: signup.ListingID,
		Payload:   raw,
	}, nil
}

func (s *PayloadService) invalidateStatus(ctx context.Context, userID, listingID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID, listingID); err != nil {
		// cache staleness is tolerable; the TTL bounds it
		s.logger.WarnContext(ctx, "invalidate issue status cache failed",
			"user_id", userID, "listing_id", listingID, "error", err)
	}
}
