package appmock

import (
	"context"

	domain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
)

var (
	_ domain.Repository        = (*Repo)(nil)
	_ domain.ReviewRepository  = (*ReviewRepo)(nil)
	_ domain.OfficerRepository = (*OfficerRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, a *domain.Application) error
	GetByNumberFn           func(ctx context.Context, number string) (*domain.Application, error)
	GetByNumberForUpdateFn  func(ctx context.Context, number string) (*domain.Application, error)
	SaveFn                  func(ctx context.Context, a *domain.Application) error
	UpdateStatusFn          func(ctx context.Context, id uint64, from, to domain.Status) error
	MarkRejectedFn          func(ctx context.Context, id uint64, from domain.Status, stage domain.Stage) error
	ListPendingForStageFn   func(ctx context.Context, cfg domain.StageConfig, officerID string, position domain.PositionType) ([]domain.Application, error)
	ListCompletedForStageFn func(ctx context.Context, cfg domain.StageConfig, officerID string) ([]domain.Application, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByNumber(ctx context.Context, number string) (*domain.Application, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByNumberForUpdate(ctx context.Context, number string) (*domain.Application, error) {
	if m.GetByNumberForUpdateFn != nil {
		return m.GetByNumberForUpdateFn(ctx, number)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, from, to domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, from, to)
	}
	return nil
}

func (m *Repo) MarkRejected(ctx context.Context, id uint64, from domain.Status, stage domain.Stage) error {
	if m.MarkRejectedFn != nil {
		return m.MarkRejectedFn(ctx, id, from, stage)
	}
	return nil
}

func (m *Repo) ListPendingForStage(ctx context.Context, cfg domain.StageConfig, officerID string, position domain.PositionType) ([]domain.Application, error) {
	if m.ListPendingForStageFn != nil {
		return m.ListPendingForStageFn(ctx, cfg, officerID, position)
	}
	return nil, nil
}

func (m *Repo) ListCompletedForStage(ctx context.Context, cfg domain.StageConfig, officerID string) ([]domain.Application, error) {
	if m.ListCompletedForStageFn != nil {
		return m.ListCompletedForStageFn(ctx, cfg, officerID)
	}
	return nil, nil
}

// ReviewRepo is a function-backed mock that satisfies domain.ReviewRepository.
type ReviewRepo struct {
	CreateFn       func(ctx context.Context, r *domain.StageReview) error
	GetFn          func(ctx context.Context, applicationID uint64, stage domain.Stage) (*domain.StageReview, error)
	GetForUpdateFn func(ctx context.Context, applicationID uint64, stage domain.Stage) (*domain.StageReview, error)
	SaveFn         func(ctx context.Context, r *domain.StageReview) error
}

func (m *ReviewRepo) Create(ctx context.Context, r *domain.StageReview) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *ReviewRepo) Get(ctx context.Context, applicationID uint64, stage domain.Stage) (*domain.StageReview, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, applicationID, stage)
	}
	return nil, domain.ErrNotFound
}

func (m *ReviewRepo) GetForUpdate(ctx context.Context, applicationID uint64, stage domain.Stage) (*domain.StageReview, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, applicationID, stage)
	}
	return nil, domain.ErrNotFound
}

func (m *ReviewRepo) Save(ctx context.Context, r *domain.StageReview) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

// OfficerRepo is a function-backed mock that satisfies domain.OfficerRepository.
type OfficerRepo struct {
	CreateFn         func(ctx context.Context, o *domain.Officer) error
	GetByOfficerIDFn func(ctx context.Context, officerID string) (*domain.Officer, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.Officer, error)
}

func (m *OfficerRepo) Create(ctx context.Context, o *domain.Officer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *OfficerRepo) GetByOfficerID(ctx context.Context, officerID string) (*domain.Officer, error) {
	if m.GetByOfficerIDFn != nil {
		return m.GetByOfficerIDFn(ctx, officerID)
	}
	return nil, domain.ErrNotFound
}

func (m *OfficerRepo) GetByEmail(ctx context.Context, email string) (*domain.Officer, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}
