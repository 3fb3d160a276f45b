package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/data/pgxutil"
	"github.com/credkit/issuerd/internal/domain/model"
	apperrors "github.com/credkit/issuerd/internal/errors"
)

// SignupRepo provides the read-side queries the payload builder consumes.
// It never writes; signup lifecycle is owned by the admin surface.
type SignupRepo struct {
	DB *sql.DB
}

// NewSignupRepo constructs a SignupRepo.
func NewSignupRepo(db *sql.DB) *SignupRepo {
	return &SignupRepo{DB: db}
}

// CompletedSignup fetches the joined signup/listing/user record for the
// pair. The pair must resolve to exactly one completed signup: zero rows
// yield core.ErrNoCompletedSignup, more than one row yields
// core.ErrMultipleCompletedSignups.
func (r *SignupRepo) CompletedSignup(
	ctx context.Context,
	userID, listingID string,
) (*model.CompletedSignup, error) {
	const query = `
		SELECT
			s.id           AS signup_id,
			u.id           AS user_id,
			u.subject_id   AS subject_id,
			u.name         AS user_name,
			u.email        AS user_email,
			l.id           AS listing_id,
			l.title        AS listing_title,
			l.description  AS listing_description,
			l.trigger_mode AS trigger_mode,
			l.expiry_days  AS expiry_days,
			s.completed_at AS completed_at
		FROM signups s
		JOIN users u ON u.id = s.user_id
		JOIN listings l ON l.id = s.listing_id
		WHERE s.user_id = $1 AND s.listing_id = $2 AND s.status = 'completed'
		LIMIT 2`

	var signups []model.CompletedSignup
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, userID, listingID)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CompletedSignup])
		if err != nil {
			return err
		}
		signups = collected
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("fetch completed signup: %w", err))
	}

	switch len(signups) {
	case 0:
		return nil, core.ErrNoCompletedSignup
	case 1:
		return &signups[0], nil
	default:
		return nil, core.ErrMultipleCompletedSignups
	}
}

// EligibleTags returns the listing's non-archived tags that are allowed to
// issue credentials.
func (r *SignupRepo) EligibleTags(
	ctx context.Context,
	listingID string,
) ([]model.IssueTag, error) {
	const query = `
		SELECT t.id, t.title, t.description, t.expiry_days
		FROM tags t
		JOIN listing_tags lt ON lt.tag_id = t.id
		WHERE lt.listing_id = $1
			AND t.can_issue_oca = true
			AND t.archived_ts IS NULL
		ORDER BY t.created_at ASC`

	var tags []model.IssueTag
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, listingID)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.IssueTag])
		if err != nil {
			return err
		}
		tags = collected
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("fetch eligible tags: %w", err))
	}
	return tags, nil
}

// UnenqueuedCompletions returns completed signups on auto-trigger listings
// that have no issuance jobs yet.
func (r *SignupRepo) UnenqueuedCompletions(
	ctx context.Context,
	limit int,
) ([]*model.CompletedSignup, error) {
	const query = `
		SELECT
			s.id           AS signup_id,
			u.id           AS user_id,
			u.subject_id   AS subject_id,
			u.name         AS user_name,
			u.email        AS user_email,
			l.id           AS listing_id,
			l.title        AS listing_title,
			l.description  AS listing_description,
			l.trigger_mode AS trigger_mode,
			l.expiry_days  AS expiry_days,
			s.completed_at AS completed_at
		FROM signups s
		JOIN users u ON u.id = s.user_id
		JOIN listings l ON l.id = s.listing_id
		WHERE s.status = 'completed'
			AND l.trigger_mode = 'auto'
			AND NOT EXISTS (
				SELECT 1 FROM vc_issue_jobs j
				WHERE j.user_id = s.user_id AND j.listing_id = s.listing_id
			)
		ORDER BY s.completed_at ASC
		LIMIT $1`

	var signups []*model.CompletedSignup
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.CompletedSignup])
		if err != nil {
			return err
		}
		signups = collected
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("fetch unenqueued completions: %w", err))
	}
	return signups, nil
}
