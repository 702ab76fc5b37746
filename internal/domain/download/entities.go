package download

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("download token not found")
	ErrExpired  = errors.New("download token expired")
)

// ArtifactKind names the generated documents one verified identity check
// authorizes.
type ArtifactKind string

const (
	ArtifactCertificate        ArtifactKind = "certificate"
	ArtifactRecommendationForm ArtifactKind = "recommendation_form"
	ArtifactChallan            ArtifactKind = "challan"
)

// Kinds lists every downloadable artifact class.
var Kinds = []ArtifactKind{ArtifactCertificate, ArtifactRecommendationForm, ArtifactChallan}

// KindByName returns the artifact kind for a slug, or false when unknown.
func KindByName(name string) (ArtifactKind, bool) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// Token is an ephemeral credential minted after a successful document-access
// OTP verification. One token serves every artifact kind until expiry: all
// three documents derive from the same verified identity check.
type Token struct {
	Token             string    `json:"token"`
	ApplicationNumber string    `json:"application_number"`
	ApplicantName     string    `json:"applicant_name"`
	IssuedAt          time.Time `json:"issued_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// Live reports whether the token is redeemable at the given time.
func (t *Token) Live(now time.Time) bool { return now.Before(t.ExpiresAt) }
