package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		Reviews:      &StageReviewRepository{db: tx},
		Challenges:   &ChallengeRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationNumber string, fn func(r uow.Repos, a *application.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the application row up-front to prevent races
		a, err := r.Applications.GetByNumberForUpdate(ctx, applicationNumber)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
