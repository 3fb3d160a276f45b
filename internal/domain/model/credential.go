package model

import (
	"time"

	"github.com/google/uuid"
)

// issuerRefNamespace is the fixed UUID namespace for deriving issuer
// reference ids. Changing it would break duplicate detection downstream.
var issuerRefNamespace = uuid.MustParse("8f1f2b6e-43a1-4f2e-9c11-6d9a30c24d55")

// DeriveIssuerRefID returns the deterministic issuer reference id for a
// (user, entity, title) triple. The entity is either the listing or a tag.
// The concatenation order userID+entityID+title is part of the contract:
// the downstream issuance service uses the resulting id for duplicate
// detection, so the same triple must always map to the same id.
func DeriveIssuerRefID(userID, entityID, title string) string {
	return uuid.NewSHA1(issuerRefNamespace, []byte(userID+entityID+title)).String()
}

// CredentialSubject carries the holder identity embedded in the credential
// claims.
type CredentialSubject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Achievement describes what the credential attests to: the listing itself
// or one of its issuance-eligible tags.
type Achievement struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CredentialClaims is the claims block of an issuance request.
type CredentialClaims struct {
	AwardedAt   time.Time         `json:"awardedAt"`
	ValidFrom   time.Time         `json:"validFrom"`
	ValidUntil  *time.Time        `json:"validUntil,omitempty"`
	Subject     CredentialSubject `json:"subject"`
	Achievement Achievement       `json:"achievement"`
}

// CredentialPayload is the request body POSTed to the external issuance
// endpoint, one per job.
type CredentialPayload struct {
	IssuerRefID string           `json:"issuerRefId"`
	HolderID    string           `json:"holderId"`
	Claims      CredentialClaims `json:"claims"`
}

// AchievementTypeListing marks a credential issued for the listing itself.
const AchievementTypeListing = "listing"

// AchievementTypeTag marks a credential issued for an eligible tag.
const AchievementTypeTag = "tag"
