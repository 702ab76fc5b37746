package workflow

import (
	"time"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
)

// Caller is the authenticated officer on whose behalf a coordinator call
// runs. Identity is always passed explicitly; coordinators never read it from
// ambient request state.
type Caller struct {
	OfficerID string
	Role      application.Role
	Positions []string
}

// HasPosition reports whether the caller covers the given position type.
// An empty list means unrestricted.
func (c Caller) HasPosition(p application.PositionType) bool {
	if len(c.Positions) == 0 {
		return true
	}
	for _, pos := range c.Positions {
		if application.PositionType(pos) == p {
			return true
		}
	}
	return false
}

type ApplicationSummary struct {
	ApplicationNumber string                   `json:"application_number"`
	ApplicantName     string                   `json:"applicant_name"`
	PositionType      application.PositionType `json:"position_type"`
	Status            application.Status       `json:"status"`
	CreatedAt         time.Time                `json:"created_at"`
}

func summarize(apps []application.Application) []ApplicationSummary {
	out := make([]ApplicationSummary, 0, len(apps))
	for _, a := range apps {
		out = append(out, ApplicationSummary{
			ApplicationNumber: a.ApplicationNumber,
			ApplicantName:     a.ApplicantName,
			PositionType:      a.PositionType,
			Status:            a.Status,
			CreatedAt:         a.CreatedAt,
		})
	}
	return out
}

type SignInput struct {
	ApplicationNumber string
	OTPCode           string
	Comments          string
}

type ActionResult struct {
	ApplicationNumber string             `json:"application_number"`
	Stage             application.Stage  `json:"stage"`
	Status            application.Status `json:"status"`
}
