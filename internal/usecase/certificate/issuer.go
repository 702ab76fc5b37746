package certificate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/document"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
)

// Issuer renders and stores the certificate bundle once payment completes,
// then finalizes the application. Safe to re-run: artifact kinds already in
// the store are skipped and an already-finalized application is left alone.
type Issuer struct {
	tx       uow.UnitOfWork
	renderer document.Renderer
	store    document.Store
	log      *zap.Logger
}

func NewIssuer(tx uow.UnitOfWork, renderer document.Renderer, store document.Store, log *zap.Logger) *Issuer {
	return &Issuer{tx: tx, renderer: renderer, store: store, log: log}
}

func (i *Issuer) Issue(ctx context.Context, app *application.Application) error {
	for _, kind := range download.Kinds {
		key := document.Key(app.ApplicationNumber, kind)
		if _, err := i.store.Get(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, document.ErrNotGenerated) {
			return err
		}
		data, err := i.renderer.Render(ctx, app, kind)
		if err != nil {
			return err
		}
		if err := i.store.Put(ctx, key, data); err != nil {
			return err
		}
		i.log.Info("artifact generated",
			zap.String("application", app.ApplicationNumber),
			zap.String("kind", string(kind)),
		)
	}

	err := i.tx.WithinTx(ctx, func(r uow.Repos) error {
		return r.Applications.UpdateStatus(ctx, app.ID, application.StatusPaymentCompleted, application.StatusFinalApproved)
	})
	if errors.Is(err, application.ErrInvalidTransition) {
		// already finalized by an earlier run
		return nil
	}
	return err
}
