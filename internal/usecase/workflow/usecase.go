package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	domainOTP "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
	otpengine "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/otp"
)

// ErrValidation marks pure input-validation failures (blank rejection
// comments and the like) that are rejected before any store access.
var ErrValidation = errors.New("validation failed")

// Coordinator orchestrates one review stage. Every officer role shares this
// implementation, parameterized by its StageConfig.
type Coordinator struct {
	cfg      application.StageConfig
	tx       uow.UnitOfWork
	otp      *otpengine.Engine
	officers application.OfficerRepository
	log      *zap.Logger
}

func NewCoordinator(cfg application.StageConfig, tx uow.UnitOfWork, engine *otpengine.Engine, officers application.OfficerRepository, log *zap.Logger) *Coordinator {
	return &Coordinator{cfg: cfg, tx: tx, otp: engine, officers: officers, log: log}
}

func (c *Coordinator) Stage() application.StageConfig { return c.cfg }

// signatureIdentifier scopes a signature OTP to one officer and one
// application, so a code issued for one application cannot be replayed
// against another.
func signatureIdentifier(officerID, applicationNumber string) string {
	return fmt.Sprintf("officer:%s:app:%s", officerID, applicationNumber)
}

func (c *Coordinator) authorize(caller Caller) error {
	if caller.Role != c.cfg.Role {
		return application.ErrForbidden
	}
	return nil
}

// ListPending returns applications waiting at this stage for the caller,
// ordered by creation date.
func (c *Coordinator) ListPending(ctx context.Context, caller Caller, position application.PositionType) ([]ApplicationSummary, error) {
	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	if c.cfg.PositionFiltered && position != "" && !caller.HasPosition(position) {
		return nil, application.ErrForbidden
	}
	var out []ApplicationSummary
	err := c.tx.WithinTx(ctx, func(r uow.Repos) error {
		apps, err := r.Applications.ListPendingForStage(ctx, c.cfg, caller.OfficerID, position)
		if err != nil {
			return err
		}
		out = summarize(apps)
		return nil
	})
	return out, err
}

// ListCompleted returns applications this officer has approved or rejected at
// this stage, regardless of how far downstream they have moved since.
func (c *Coordinator) ListCompleted(ctx context.Context, caller Caller) ([]ApplicationSummary, error) {
	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	var out []ApplicationSummary
	err := c.tx.WithinTx(ctx, func(r uow.Repos) error {
		apps, err := r.Applications.ListCompletedForStage(ctx, c.cfg, caller.OfficerID)
		if err != nil {
			return err
		}
		out = summarize(apps)
		return nil
	})
	return out, err
}

// GenerateOTP checks the caller is authorized for the application at this
// stage, then issues a signature challenge scoped to (officer, application).
func (c *Coordinator) GenerateOTP(ctx context.Context, caller Caller, applicationNumber string) (*otpengine.ChallengeDTO, error) {
	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	err := c.tx.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByNumber(ctx, applicationNumber)
		if err != nil {
			return application.ErrNotFound
		}
		return c.guardStage(ctx, r, app, caller)
	})
	if err != nil {
		return nil, err
	}

	officer, err := c.officers.GetByOfficerID(ctx, caller.OfficerID)
	if err != nil {
		return nil, application.ErrForbidden
	}

	return c.otp.Issue(ctx, otpengine.IssueInput{
		Identifier: signatureIdentifier(caller.OfficerID, applicationNumber),
		Purpose:    domainOTP.PurposeStageSignature,
		Recipient:  officer.Email,
		Subject:    "Signature verification code",
		Body:       "Your signing code for application " + applicationNumber + " is %s.",
	})
}

// VerifyAndSign consumes the signature OTP and advances the application in
// one transaction. A failed transition rolls the OTP consumption back, so a
// code is never burned by a sign attempt that did not take effect.
func (c *Coordinator) VerifyAndSign(ctx context.Context, caller Caller, in SignInput) (*ActionResult, error) {
	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	var out *ActionResult
	err := c.tx.WithinApplicationTx(ctx, in.ApplicationNumber, func(r uow.Repos, app *application.Application) error {
		next, err := application.NextOnApprove(c.cfg, app.Status)
		if err != nil {
			return err
		}
		review, err := c.claimReview(ctx, r, app, caller)
		if err != nil {
			return err
		}

		ident := signatureIdentifier(caller.OfficerID, app.ApplicationNumber)
		if err := c.otp.VerifyWith(ctx, r.Challenges, ident, domainOTP.PurposeStageSignature, in.OTPCode); err != nil {
			if errors.Is(err, domainOTP.ErrNotFound) {
				// no live challenge: the approval was attempted without
				// (or after consuming) a signature OTP
				return application.ErrSignatureRequired
			}
			return err
		}

		now := c.otp.Now()
		review.Status = application.ReviewApproved
		review.ApprovalDate = &now
		if strings.TrimSpace(in.Comments) != "" {
			review.Comments = in.Comments
		}
		if err := r.Reviews.Save(ctx, review); err != nil {
			return err
		}

		if err := r.Applications.UpdateStatus(ctx, app.ID, c.cfg.Pending, next); err != nil {
			return err
		}
		out = &ActionResult{ApplicationNumber: app.ApplicationNumber, Stage: c.cfg.Stage, Status: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("stage signed",
		zap.String("application", out.ApplicationNumber),
		zap.String("stage", string(c.cfg.Stage)),
		zap.String("officer", caller.OfficerID),
		zap.String("status", string(out.Status)),
	)
	return out, nil
}

// Reject marks the application rejected at this stage. Comments are
// mandatory; the guard runs before any store access and consumes nothing.
func (c *Coordinator) Reject(ctx context.Context, caller Caller, applicationNumber, comments string) (*ActionResult, error) {
	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(comments) == "" {
		return nil, fmt.Errorf("%w: rejection comments are mandatory", ErrValidation)
	}
	var out *ActionResult
	err := c.tx.WithinApplicationTx(ctx, applicationNumber, func(r uow.Repos, app *application.Application) error {
		if err := application.CanReject(c.cfg, app.Status); err != nil {
			return err
		}
		review, err := c.claimReview(ctx, r, app, caller)
		if err != nil {
			return err
		}

		now := c.otp.Now()
		review.Status = application.ReviewRejected
		review.RejectionDate = &now
		review.Comments = comments
		if err := r.Reviews.Save(ctx, review); err != nil {
			return err
		}

		if err := r.Applications.MarkRejected(ctx, app.ID, c.cfg.Pending, c.cfg.Stage); err != nil {
			return err
		}
		out = &ActionResult{ApplicationNumber: app.ApplicationNumber, Stage: c.cfg.Stage, Status: application.StatusRejected}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("stage rejected",
		zap.String("application", out.ApplicationNumber),
		zap.String("stage", string(c.cfg.Stage)),
		zap.String("officer", caller.OfficerID),
	)
	return out, nil
}

// guardStage verifies stage/status/officer/position preconditions without
// mutating anything.
func (c *Coordinator) guardStage(ctx context.Context, r uow.Repos, app *application.Application, caller Caller) error {
	if app.Status != c.cfg.Pending {
		return application.ErrInvalidTransition
	}
	if c.cfg.PositionFiltered && !caller.HasPosition(app.PositionType) {
		return application.ErrForbidden
	}
	if c.cfg.Bound {
		review, err := r.Reviews.Get(ctx, app.ID, c.cfg.Stage)
		if err != nil {
			// bound stages require an assignment before any officer action
			return application.ErrForbidden
		}
		if review.OfficerID != caller.OfficerID {
			return application.ErrForbidden
		}
		if review.Status != application.ReviewPending {
			return application.ErrAlreadyDecided
		}
	}
	return nil
}

// claimReview locks (or creates, for unbound stages) the caller's pending
// review row for this stage.
func (c *Coordinator) claimReview(ctx context.Context, r uow.Repos, app *application.Application, caller Caller) (*application.StageReview, error) {
	if c.cfg.PositionFiltered && !caller.HasPosition(app.PositionType) {
		return nil, application.ErrForbidden
	}
	review, err := r.Reviews.GetForUpdate(ctx, app.ID, c.cfg.Stage)
	switch {
	case err == nil:
		if c.cfg.Bound && review.OfficerID != caller.OfficerID {
			return nil, application.ErrForbidden
		}
		if review.Status != application.ReviewPending {
			return nil, application.ErrAlreadyDecided
		}
		review.OfficerID = caller.OfficerID
		return review, nil
	case errors.Is(err, application.ErrNotFound):
		if c.cfg.Bound {
			// bound stages only act on a pre-assigned review row
			return nil, application.ErrForbidden
		}
		review = &application.StageReview{
			ApplicationID: app.ID,
			Stage:         c.cfg.Stage,
			OfficerID:     caller.OfficerID,
			Status:        application.ReviewPending,
		}
		if err := r.Reviews.Create(ctx, review); err != nil {
			return nil, err
		}
		return review, nil
	default:
		return nil, err
	}
}
