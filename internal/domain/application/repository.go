package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByNumber(ctx context.Context, number string) (*Application, error)
	// GetByNumberForUpdate row-locks the application inside a transaction.
	GetByNumberForUpdate(ctx context.Context, number string) (*Application, error)
	Save(ctx context.Context, a *Application) error

	// UpdateStatus performs a conditional status write keyed on the expected
	// current status. Returns ErrInvalidTransition when zero rows match,
	// which is the sole ordering mechanism between concurrent transitions.
	UpdateStatus(ctx context.Context, applicationID uint64, from, to Status) error

	// MarkRejected is the rejection variant of UpdateStatus: status,
	// rejected_stage and status_updated_at change in one conditional write
	// keyed on the expected current status.
	MarkRejected(ctx context.Context, applicationID uint64, from Status, stage Stage) error

	ListPendingForStage(ctx context.Context, cfg StageConfig, officerID string, position PositionType) ([]Application, error)
	ListCompletedForStage(ctx context.Context, cfg StageConfig, officerID string) ([]Application, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *StageReview) error
	// Get returns ErrNotFound when no review row exists for the pair.
	Get(ctx context.Context, applicationID uint64, stage Stage) (*StageReview, error)
	GetForUpdate(ctx context.Context, applicationID uint64, stage Stage) (*StageReview, error)
	Save(ctx context.Context, r *StageReview) error
}

type OfficerRepository interface {
	Create(ctx context.Context, o *Officer) error
	GetByOfficerID(ctx context.Context, officerID string) (*Officer, error)
	GetByEmail(ctx context.Context, email string) (*Officer, error)
}
