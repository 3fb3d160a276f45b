package model

import "time"

// TriggerMode governs whether a listing issues credentials automatically
// when a signup is marked completed, or only via an explicit admin action.
type TriggerMode string

const (
	// TriggerModeAuto issues credentials as soon as a signup completes.
	TriggerModeAuto TriggerMode = "auto"
	// TriggerModeManual requires an explicit admin issue action.
	TriggerModeManual TriggerMode = "manual"
)

// SignupStatus is the lifecycle state of a user's registration against a
// listing. Only completed signups are eligible for issuance.
type SignupStatus string

const (
	// SignupStatusPending indicates a signup awaiting review.
	SignupStatusPending SignupStatus = "pending"
	// SignupStatusApproved indicates an approved signup.
	SignupStatusApproved SignupStatus = "approved"
	// SignupStatusDeclined indicates a declined signup.
	SignupStatusDeclined SignupStatus = "declined"
	// SignupStatusCompleted indicates a completed signup.
	SignupStatusCompleted SignupStatus = "completed"
)

// CompletedSignup is the joined signup/listing/user view the payload builder
// consumes. It exists only as a query projection.
type CompletedSignup struct {
	SignupID           string      `json:"signup_id"            db:"signup_id"`
	UserID             string      `json:"user_id"              db:"user_id"`
	SubjectID          string      `json:"subject_id"           db:"subject_id"`
	UserName           string      `json:"user_name"            db:"user_name"`
	UserEmail          string      `json:"user_email"           db:"user_email"`
	ListingID          string      `json:"listing_id"           db:"listing_id"`
	ListingTitle       string      `json:"listing_title"        db:"listing_title"`
	ListingDescription string      `json:"listing_description"  db:"listing_description"`
	TriggerMode        TriggerMode `json:"trigger_mode"         db:"trigger_mode"`
	ExpiryDays         *int        `json:"expiry_days,omitempty" db:"expiry_days"`
	CompletedAt        time.Time   `json:"completed_at"         db:"completed_at"`
}

// IssueTag is a non-archived, issuance-eligible tag attached to a listing
// (can_issue_oca = true and archived_ts IS NULL).
type IssueTag struct {
	ID          string `json:"id"                    db:"id"`
	Title       string `json:"title"                 db:"title"`
	Description string `json:"description"           db:"description"`
	ExpiryDays  *int   `json:"expiry_days,omitempty" db:"expiry_days"`
}
