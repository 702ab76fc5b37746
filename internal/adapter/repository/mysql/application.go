package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByNumber(ctx context.Context, number string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_number = ?", number).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ApplicationRepository) GetByNumberForUpdate(ctx context.Context, number string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_number = ?", number).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}

// UpdateStatus is a conditional write keyed on the expected current status.
// Zero matched rows means another transition won the race (or the caller is
// re-applying a decision), surfaced uniformly as ErrInvalidTransition.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, applicationID uint64, from, to appDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", applicationID, from).
		Updates(map[string]any{"status": to, "status_updated_at": gorm.Expr("CURRENT_TIMESTAMP")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrInvalidTransition
	}
	return nil
}

// MarkRejected folds the rejection bookkeeping into the conditional status
// write, so nothing later rewrites status_updated_at with a stale value.
func (r *ApplicationRepository) MarkRejected(ctx context.Context, applicationID uint64, from appDomain.Status, stage appDomain.Stage) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", applicationID, from).
		Updates(map[string]any{
			"status":            appDomain.StatusRejected,
			"rejected_stage":    stage,
			"status_updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrInvalidTransition
	}
	return nil
}

func (r *ApplicationRepository) ListPendingForStage(ctx context.Context, cfg appDomain.StageConfig, officerID string, position appDomain.PositionType) ([]appDomain.Application, error) {
	q := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("applications.status = ?", cfg.Pending)
	if cfg.Bound {
		q = q.Joins("JOIN stage_reviews sr ON sr.application_id = applications.id AND sr.stage = ?", cfg.Stage).
			Where("sr.officer_id = ? AND sr.status = ?", officerID, appDomain.ReviewPending)
	}
	if cfg.PositionFiltered && position != "" {
		q = q.Where("applications.position_type = ?", position)
	}
	var out []appDomain.Application
	err := q.Order("applications.created_at ASC, applications.id ASC").Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) ListCompletedForStage(ctx context.Context, cfg appDomain.StageConfig, officerID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Joins("JOIN stage_reviews sr ON sr.application_id = applications.id AND sr.stage = ?", cfg.Stage).
		Where("sr.officer_id = ? AND sr.status IN ?", officerID,
			[]appDomain.ReviewStatus{appDomain.ReviewApproved, appDomain.ReviewRejected}).
		Order("applications.created_at ASC, applications.id ASC").
		Find(&out).Error
	return out, err
}
