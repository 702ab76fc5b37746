package application

// Stage is one officer role's review step in the approval pipeline.
type Stage string

const (
	StageAssistantEngineer Stage = "assistant_engineer"
	StageExecutiveEngineer Stage = "executive_engineer"
	StageCityEngineer      Stage = "city_engineer"
	StageEEStage2          Stage = "ee_stage2"
	StageCEStage2          Stage = "ce_stage2"
)

// StageConfig drives one generic workflow coordinator per role instead of a
// bespoke type per role. Bound stages route applications to one assigned
// officer; position-filtered stages additionally match the officer's
// specialty against the application's position type.
type StageConfig struct {
	Stage            Stage
	Role             Role
	Pending          Status
	Next             Status
	Bound            bool
	PositionFiltered bool
}

// Stages lists the review pipeline in order. Clerk processing and payment sit
// between CE / EE-Stage2 and after CE-Stage2 and are driven by dedicated
// operations, not by signature stages.
var Stages = []StageConfig{
	{
		Stage:            StageAssistantEngineer,
		Role:             RoleAssistantEngineer,
		Pending:          StatusAEPending,
		Next:             StatusEEPending,
		Bound:            true,
		PositionFiltered: true,
	},
	{
		Stage:   StageExecutiveEngineer,
		Role:    RoleExecutiveEngineer,
		Pending: StatusEEPending,
		Next:    StatusCEPending,
	},
	{
		Stage:   StageCityEngineer,
		Role:    RoleCityEngineer,
		Pending: StatusCEPending,
		Next:    StatusClerkProcessing,
	},
	{
		Stage:   StageEEStage2,
		Role:    RoleEEStage2,
		Pending: StatusEEStage2Pending,
		Next:    StatusCEStage2Pending,
	},
	{
		Stage:   StageCEStage2,
		Role:    RoleCEStage2,
		Pending: StatusCEStage2Pending,
		Next:    StatusPaymentPending,
	},
}

// StageByName returns the config for a stage slug, or false when unknown.
func StageByName(name string) (StageConfig, bool) {
	for _, cfg := range Stages {
		if string(cfg.Stage) == name {
			return cfg, true
		}
	}
	return StageConfig{}, false
}

// NextOnApprove validates that an approval at the given stage is legal from
// `current` and returns the status the application advances to.
func NextOnApprove(cfg StageConfig, current Status) (Status, error) {
	if current != cfg.Pending {
		return "", ErrInvalidTransition
	}
	return cfg.Next, nil
}

// CanReject reports whether a rejection at the given stage is legal from
// `current`. Rejection is absorbing; nothing advances out of it.
func CanReject(cfg StageConfig, current Status) error {
	if current != cfg.Pending {
		return ErrInvalidTransition
	}
	return nil
}
