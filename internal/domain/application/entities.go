package application

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid application state transition")
	ErrSignatureRequired = errors.New("signature otp required before approval")
	ErrAlreadyDecided    = errors.New("stage already approved or rejected")
	ErrForbidden         = errors.New("officer not authorized for this application")
)

type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusAEPending        Status = "ae_pending"
	StatusEEPending        Status = "ee_pending"
	StatusCEPending        Status = "ce_pending"
	StatusClerkProcessing  Status = "clerk_processing"
	StatusEEStage2Pending  Status = "ee_stage2_pending"
	StatusCEStage2Pending  Status = "ce_stage2_pending"
	StatusPaymentPending   Status = "payment_pending"
	StatusPaymentCompleted Status = "payment_completed"
	StatusFinalApproved    Status = "final_approved"
	StatusRejected         Status = "rejected"
)

// Terminal reports whether no further stage mutation is allowed.
func (s Status) Terminal() bool {
	return s == StatusFinalApproved || s == StatusRejected
}

type PositionType string

const (
	PositionArchitect          PositionType = "architect"
	PositionStructuralEngineer PositionType = "structural_engineer"
	PositionLicensedEngineer   PositionType = "licensed_engineer"
	PositionSupervisor         PositionType = "supervisor"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Table: applications. Business data beyond what drives the pipeline
// (addresses, attachments) lives elsewhere.
type Application struct {
	ID                uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationNumber string         `gorm:"column:application_number;size:32;not null;uniqueIndex:ux_applications_number"`
	ApplicantName     string         `gorm:"column:applicant_name;size:191;not null"`
	ApplicantEmail    string         `gorm:"column:applicant_email;size:191;not null;index"`
	PositionType      PositionType   `gorm:"column:position_type;size:32;not null;index"`
	Status            Status         `gorm:"column:status;size:32;not null;default:'submitted';index"`
	RejectedStage     *Stage         `gorm:"column:rejected_stage;size:32"`
	StatusUpdatedAt   time.Time      `gorm:"column:status_updated_at"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Application) TableName() string { return "applications" }

// Table: stage_reviews. One row per (application, stage); the single place a
// stage's decision is recorded, so approved and rejected are mutually
// exclusive by construction.
type StageReview struct {
	ID            uint64       `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID uint64       `gorm:"column:application_id;not null;uniqueIndex:ux_stage_reviews_app_stage"`
	Stage         Stage        `gorm:"column:stage;size:32;not null;uniqueIndex:ux_stage_reviews_app_stage"`
	OfficerID     string       `gorm:"column:officer_id;type:char(32);not null;index"`
	Status        ReviewStatus `gorm:"column:status;size:16;not null;default:'pending'"`
	Comments      string       `gorm:"column:comments;type:text"`
	ApprovalDate  *time.Time   `gorm:"column:approval_date"`
	RejectionDate *time.Time   `gorm:"column:rejection_date"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (StageReview) TableName() string { return "stage_reviews" }

type Role string

const (
	RoleAssistantEngineer Role = "assistant_engineer"
	RoleExecutiveEngineer Role = "executive_engineer"
	RoleCityEngineer      Role = "city_engineer"
	RoleEEStage2          Role = "ee_stage2"
	RoleCEStage2          Role = "ce_stage2"
	RoleClerk             Role = "clerk"
	RoleAdmin             Role = "admin"
)

// Table: officers. Positions is a comma-separated list of the position types
// the officer is specialized for (used only by position-filtered stages).
type Officer struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	OfficerID string         `gorm:"column:officer_id;type:char(32);not null;uniqueIndex:ux_officers_officer_id"`
	Name      string         `gorm:"column:name;size:191;not null"`
	Email     string         `gorm:"column:email;size:191;not null;uniqueIndex:ux_officers_email"`
	Role      Role           `gorm:"column:role;size:32;not null"`
	Positions string         `gorm:"column:positions;size:255"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Officer) TableName() string { return "officers" }

// HasPosition reports whether the officer covers the given position type.
// An empty Positions list means the officer is not position-restricted.
func (o *Officer) HasPosition(p PositionType) bool {
	if strings.TrimSpace(o.Positions) == "" {
		return true
	}
	for _, part := range strings.Split(o.Positions, ",") {
		if PositionType(strings.TrimSpace(part)) == p {
			return true
		}
	}
	return false
}
