package registry

import (
	"time"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
)

type SubmitInput struct {
	ApplicantName  string
	ApplicantEmail string
	PositionType   application.PositionType
}

type ApplicationDTO struct {
	ApplicationNumber string                   `json:"application_number"`
	ApplicantName     string                   `json:"applicant_name"`
	PositionType      application.PositionType `json:"position_type"`
	Status            application.Status       `json:"status"`
	CreatedAt         time.Time                `json:"created_at"`
}

type StatusDTO struct {
	ApplicationNumber string             `json:"application_number"`
	Status            application.Status `json:"status"`
	RejectedStage     *application.Stage `json:"rejected_stage,omitempty"`
	StatusUpdatedAt   time.Time          `json:"status_updated_at"`
}
