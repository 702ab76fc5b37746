package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	appDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
)

type OfficerRepository struct{ db *gorm.DB }

func NewOfficerRepository(db *gorm.DB) *OfficerRepository { return &OfficerRepository{db: db} }

func (r *OfficerRepository) Create(ctx context.Context, o *appDomain.Officer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfficerRepository) GetByOfficerID(ctx context.Context, officerID string) (*appDomain.Officer, error) {
	var out appDomain.Officer
	res := r.db.WithContext(ctx).Where("officer_id = ?", officerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *OfficerRepository) GetByEmail(ctx context.Context, email string) (*appDomain.Officer, error) {
	var out appDomain.Officer
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}
