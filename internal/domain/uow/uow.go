package uow

import (
	"context"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
)

type Repos struct {
	Applications application.Repository
	Reviews      application.ReviewRepository
	Challenges   otp.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in.
	// OTP consumption and the state transition commit or roll back together.
	WithinApplicationTx(ctx context.Context, applicationNumber string, fn func(r Repos, a *application.Application) error) error
}
