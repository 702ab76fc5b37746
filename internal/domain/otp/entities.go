package otp

import (
	"errors"
	"time"
)

var (
	// ErrNotFound deliberately covers "no challenge", "expired", "already
	// used" and "deactivated" as one outward failure, so a caller cannot
	// tell which state a challenge is in.
	ErrNotFound    = errors.New("otp challenge not found")
	ErrInvalidCode = errors.New("otp code does not match")
	ErrLockedOut   = errors.New("otp challenge locked after too many attempts")
)

type Purpose string

const (
	PurposeRegistration   Purpose = "registration"
	PurposeLogin          Purpose = "login"
	PurposeStageSignature Purpose = "stage_signature"
	PurposeDocumentAccess Purpose = "document_access"
)

// MaxAttempts is the hard attempt ceiling per challenge. The 6-digit code
// space is small on purpose; resistance comes from this ceiling plus the
// short expiry window (3 guesses against 10^6 codes per challenge).
const MaxAttempts = 3

// Table: otp_challenges. Rows are never physically deleted; a challenge is
// dead once used, deactivated or past expires_at.
type Challenge struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	Identifier   string     `gorm:"column:identifier;size:191;not null;index:idx_otp_identifier_purpose"`
	Purpose      Purpose    `gorm:"column:purpose;size:32;not null;index:idx_otp_identifier_purpose"`
	Code         string     `gorm:"column:code;size:6;not null"`
	AttemptCount int        `gorm:"column:attempt_count;not null;default:0"`
	Active       bool       `gorm:"column:active;not null;default:true"`
	Used         bool       `gorm:"column:used;not null;default:false"`
	UsedAt       *time.Time `gorm:"column:used_at"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Challenge) TableName() string { return "otp_challenges" }

// Live reports whether the challenge can still be consumed at the given time.
func (c *Challenge) Live(now time.Time) bool {
	return c.Active && !c.Used && now.Before(c.ExpiresAt)
}
