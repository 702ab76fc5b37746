package otp

import (
	"time"

	domain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
)

type IssueInput struct {
	Identifier string
	Purpose    domain.Purpose
	// Recipient is the address the code is dispatched to. Defaults to
	// Identifier, which is right for email/phone identifiers but not for
	// scoped ones like signature challenges.
	Recipient string
	// Subject/Body template the dispatched message. Body must contain a
	// single %s verb for the code.
	Subject string
	Body    string
}

type ChallengeDTO struct {
	Identifier string         `json:"identifier"`
	Purpose    domain.Purpose `json:"purpose"`
	ExpiresAt  time.Time      `json:"expires_at"`
	// DebugCode carries the raw code only when the engine runs with the
	// non-production echo flag enabled. Empty in production.
	DebugCode string `json:"debug_code,omitempty"`
}
