package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// UserFixture describes a user row for tests.
type UserFixture struct {
	ID        string
	SubjectID string
	Name      string
	Email     string
}

// InsertUser inserts a user row and returns its id.
func InsertUser(t TestingTB, db *sql.DB, f UserFixture) string {
	t.Helper()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.SubjectID == "" {
		f.SubjectID = "did:example:" + uuid.NewString()
	}
	if f.Name == "" {
		f.Name = "Test User"
	}
	if f.Email == "" {
		f.Email = f.ID + "@example.test"
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO users (id, subject_id, name, email) VALUES ($1, $2, $3, $4)`,
		f.ID, f.SubjectID, f.Name, f.Email)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return f.ID
}

// ListingFixture describes a listing row for tests.
type ListingFixture struct {
	ID          string
	Title       string
	Description string
	TriggerMode string
	ExpiryDays  *int
}

// InsertListing inserts a listing row and returns its id.
func InsertListing(t TestingTB, db *sql.DB, f ListingFixture) string {
	t.Helper()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Title == "" {
		f.Title = "Test Listing"
	}
	if f.TriggerMode == "" {
		f.TriggerMode = "auto"
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO listings (id, title, description, trigger_mode, expiry_days)
		 VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.Title, f.Description, f.TriggerMode, f.ExpiryDays)
	if err != nil {
		t.Fatalf("insert listing: %v", err)
	}
	return f.ID
}

// SignupFixture describes a signup row for tests.
type SignupFixture struct {
	ID          string
	UserID      string
	ListingID   string
	Status      string
	CompletedAt *time.Time
}

// InsertSignup inserts a signup row and returns its id. A completed signup
// gets a completed_at timestamp unless one is provided.
func InsertSignup(t TestingTB, db *sql.DB, f SignupFixture) string {
	t.Helper()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Status == "" {
		f.Status = "completed"
	}
	if f.Status == "completed" && f.CompletedAt == nil {
		now := time.Now().UTC()
		f.CompletedAt = &now
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO signups (id, user_id, listing_id, status, completed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.UserID, f.ListingID, f.Status, f.CompletedAt)
	if err != nil {
		t.Fatalf("insert signup: %v", err)
	}
	return f.ID
}

// TagFixture describes a tag row for tests.
type TagFixture struct {
	ID          string
	Title       string
	Description string
	CanIssueOCA bool
	ExpiryDays  *int
	ArchivedTS  *time.Time
}

// InsertTag inserts a tag row and returns its id.
func InsertTag(t TestingTB, db *sql.DB, f TagFixture) string {
	t.Helper()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Title == "" {
		f.Title = "Test Tag"
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tags (id, title, description, can_issue_oca, expiry_days, archived_ts)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Title, f.Description, f.CanIssueOCA, f.ExpiryDays, f.ArchivedTS)
	if err != nil {
		t.Fatalf("insert tag: %v", err)
	}
	return f.ID
}

// LinkListingTag associates a tag with a listing.
func LinkListingTag(t TestingTB, db *sql.DB, listingID, tagID string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO listing_tags (listing_id, tag_id) VALUES ($1, $2)`,
		listingID, tagID)
	if err != nil {
		t.Fatalf("link listing tag: %v", err)
	}
}
