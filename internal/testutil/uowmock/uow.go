package uowmock

import (
	"context"
	"errors"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, number string, fn func(r uow.Repos, a *application.Application) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW whose transactions simply invoke the callback
// with the given repos, which is what most usecase tests want.
func Passthrough(r uow.Repos, load func(number string) (*application.Application, error)) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinApplicationTxFn: func(ctx context.Context, number string, fn func(uow.Repos, *application.Application) error) error {
			a, err := load(number)
			if err != nil {
				return err
			}
			return fn(r, a)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinApplicationTx(ctx context.Context, number string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, number, fn)
	}
	return errUnimplemented
}
