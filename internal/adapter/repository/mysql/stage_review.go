package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
)

type StageReviewRepository struct{ db *gorm.DB }

func NewStageReviewRepository(db *gorm.DB) *StageReviewRepository {
	return &StageReviewRepository{db: db}
}

func (r *StageReviewRepository) Create(ctx context.Context, sr *appDomain.StageReview) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *StageReviewRepository) Save(ctx context.Context, sr *appDomain.StageReview) error {
	return r.db.WithContext(ctx).Save(sr).Error
}

func (r *StageReviewRepository) Get(ctx context.Context, applicationID uint64, stage appDomain.Stage) (*appDomain.StageReview, error) {
	var out appDomain.StageReview
	res := r.db.WithContext(ctx).
		Where("application_id = ? AND stage = ?", applicationID, stage).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *StageReviewRepository) GetForUpdate(ctx context.Context, applicationID uint64, stage appDomain.Stage) (*appDomain.StageReview, error) {
	var out appDomain.StageReview
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ? AND stage = ?", applicationID, stage).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}
