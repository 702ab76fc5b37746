package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	domainApp "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/certificate"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/workflow"
	"github.com/yashturmbekar/PMCRMS-sub005/pkg/id"
)

var ErrValidation = errors.New("validation failed")

// Usecase covers the application lifecycle outside signature stages:
// submission, status lookup, assignment, clerk processing and payment.
type Usecase struct {
	tx       uow.UnitOfWork
	officers domainApp.OfficerRepository
	issuer   *certificate.Issuer
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, officers domainApp.OfficerRepository, issuer *certificate.Issuer, log *zap.Logger) *Usecase {
	return &Usecase{
		tx:       tx,
		officers: officers,
		issuer:   issuer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock injects a deterministic time source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if strings.TrimSpace(in.ApplicantName) == "" || strings.TrimSpace(in.ApplicantEmail) == "" {
		return nil, ErrValidation
	}
	now := u.now()
	app := &domainApp.Application{
		ApplicationNumber: id.NewApplicationNumber(now.Year()),
		ApplicantName:     in.ApplicantName,
		ApplicantEmail:    strings.ToLower(strings.TrimSpace(in.ApplicantEmail)),
		PositionType:      in.PositionType,
		Status:            domainApp.StatusSubmitted,
		StatusUpdatedAt:   now,
	}
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		return r.Applications.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("application submitted",
		zap.String("application", app.ApplicationNumber),
		zap.String("position_type", string(app.PositionType)),
	)
	return &ApplicationDTO{
		ApplicationNumber: app.ApplicationNumber,
		ApplicantName:     app.ApplicantName,
		PositionType:      app.PositionType,
		Status:            app.Status,
		CreatedAt:         app.CreatedAt,
	}, nil
}

func (u *Usecase) GetStatus(ctx context.Context, applicationNumber string) (*StatusDTO, error) {
	var out *StatusDTO
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByNumber(ctx, applicationNumber)
		if err != nil {
			return domainApp.ErrNotFound
		}
		out = &StatusDTO{
			ApplicationNumber: app.ApplicationNumber,
			Status:            app.Status,
			RejectedStage:     app.RejectedStage,
			StatusUpdatedAt:   app.StatusUpdatedAt,
		}
		return nil
	})
	return out, err
}

// Assign routes a submitted application to an Assistant Engineer whose
// specialty covers the application's position type, and opens the AE stage.
func (u *Usecase) Assign(ctx context.Context, caller workflow.Caller, applicationNumber, officerID string) (*StatusDTO, error) {
	if err := requireClerk(caller); err != nil {
		return nil, err
	}
	officer, err := u.officers.GetByOfficerID(ctx, officerID)
	if err != nil {
		return nil, domainApp.ErrNotFound
	}
	if officer.Role != domainApp.RoleAssistantEngineer {
		return nil, errors.Join(ErrValidation, errors.New("assignee must be an assistant engineer"))
	}

	var out *StatusDTO
	err = u.tx.WithinApplicationTx(ctx, applicationNumber, func(r uow.Repos, app *domainApp.Application) error {
		if app.Status != domainApp.StatusSubmitted {
			return domainApp.ErrInvalidTransition
		}
		if !officer.HasPosition(app.PositionType) {
			return domainApp.ErrForbidden
		}
		review := &domainApp.StageReview{
			ApplicationID: app.ID,
			Stage:         domainApp.StageAssistantEngineer,
			OfficerID:     officer.OfficerID,
			Status:        domainApp.ReviewPending,
		}
		if err := r.Reviews.Create(ctx, review); err != nil {
			return err
		}
		if err := r.Applications.UpdateStatus(ctx, app.ID, domainApp.StatusSubmitted, domainApp.StatusAEPending); err != nil {
			return err
		}
		out = &StatusDTO{ApplicationNumber: app.ApplicationNumber, Status: domainApp.StatusAEPending, StatusUpdatedAt: u.now()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("application assigned",
		zap.String("application", applicationNumber),
		zap.String("officer", officerID),
	)
	return out, nil
}

// CompleteClerkProcessing moves a city-engineer-approved application into the
// second signature round.
func (u *Usecase) CompleteClerkProcessing(ctx context.Context, caller workflow.Caller, applicationNumber string) (*StatusDTO, error) {
	if err := requireClerk(caller); err != nil {
		return nil, err
	}
	return u.advance(ctx, applicationNumber, domainApp.StatusClerkProcessing, domainApp.StatusEEStage2Pending)
}

// CompletePayment records payment and triggers certificate issuance. Re-runs
// after a failed issuance retry the rendering instead of failing the call.
func (u *Usecase) CompletePayment(ctx context.Context, caller workflow.Caller, applicationNumber string) (*StatusDTO, error) {
	if err := requireClerk(caller); err != nil {
		return nil, err
	}

	var app *domainApp.Application
	err := u.tx.WithinApplicationTx(ctx, applicationNumber, func(r uow.Repos, a *domainApp.Application) error {
		switch a.Status {
		case domainApp.StatusPaymentPending:
			if err := r.Applications.UpdateStatus(ctx, a.ID, domainApp.StatusPaymentPending, domainApp.StatusPaymentCompleted); err != nil {
				return err
			}
			a.Status = domainApp.StatusPaymentCompleted
		case domainApp.StatusPaymentCompleted:
			// issuance retry path; payment already recorded
		default:
			return domainApp.ErrInvalidTransition
		}
		app = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Issuance runs after the payment transaction committed. On failure the
	// application stays payment_completed and a later call retries.
	if err := u.issuer.Issue(ctx, app); err != nil {
		u.log.Error("certificate issuance failed",
			zap.String("application", applicationNumber),
			zap.Error(err),
		)
		return &StatusDTO{ApplicationNumber: applicationNumber, Status: domainApp.StatusPaymentCompleted, StatusUpdatedAt: u.now()}, nil
	}
	return &StatusDTO{ApplicationNumber: applicationNumber, Status: domainApp.StatusFinalApproved, StatusUpdatedAt: u.now()}, nil
}

func (u *Usecase) advance(ctx context.Context, applicationNumber string, from, to domainApp.Status) (*StatusDTO, error) {
	var out *StatusDTO
	err := u.tx.WithinApplicationTx(ctx, applicationNumber, func(r uow.Repos, app *domainApp.Application) error {
		if err := r.Applications.UpdateStatus(ctx, app.ID, from, to); err != nil {
			return err
		}
		out = &StatusDTO{ApplicationNumber: app.ApplicationNumber, Status: to, StatusUpdatedAt: u.now()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func requireClerk(caller workflow.Caller) error {
	if caller.Role != domainApp.RoleClerk && caller.Role != domainApp.RoleAdmin {
		return domainApp.ErrForbidden
	}
	return nil
}
