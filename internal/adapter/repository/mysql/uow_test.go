package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	otpDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
)

// openUowTestDB migrates every table the UoW repos touch.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&applicationSQLite{}, &stageReviewSQLite{}, &challengeSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)
	reviewRepo := NewStageReviewRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeApplication("PMC-2026-100001", appDomain.StatusAEPending)
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if a.ID == 0 {
			t.Fatalf("application auto ID not set")
		}
		return r.Reviews.Create(ctx, &appDomain.StageReview{
			ApplicationID: a.ID,
			Stage:         appDomain.StageAssistantEngineer,
			OfficerID:     "ae-1",
			Status:        appDomain.ReviewPending,
		})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	a, err := appRepo.GetByNumber(ctx, "PMC-2026-100001")
	if err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
	if _, err := reviewRepo.Get(ctx, a.ID, appDomain.StageAssistantEngineer); err != nil {
		t.Fatalf("review not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)

	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeApplication("PMC-2026-100002", appDomain.StatusAEPending)
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if err := r.Reviews.Create(ctx, &appDomain.StageReview{
			ApplicationID: a.ID,
			Stage:         appDomain.StageAssistantEngineer,
			OfficerID:     "ae-1",
			Status:        appDomain.ReviewPending,
		}); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// None should exist after rollback
	if _, err := appRepo.GetByNumber(ctx, "PMC-2026-100002"); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("expected application absent after rollback, got %v", err)
	}
	var count int64
	if err := db.Model(&stageReviewSQLite{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected no review rows after rollback, got %d", count)
	}
}

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)

	// Seed a pending application and a live signature challenge (outside tx)
	seed := makeApplication("PMC-2026-100003", appDomain.StatusEEPending)
	if err := appRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	now := time.Now().UTC()
	ch := makeChallenge("officer:ee-1:app:PMC-2026-100003", "123456", now, now.Add(10*time.Minute))
	ch.Purpose = string(otpDomain.PurposeStageSignature)
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	// The sign sequence: consume challenge, record review, advance status.
	if err := guow.WithinApplicationTx(ctx, "PMC-2026-100003", func(r uow.Repos, a *appDomain.Application) error {
		if a == nil || a.ApplicationNumber != "PMC-2026-100003" || a.Status != appDomain.StatusEEPending {
			t.Fatalf("unexpected application passed to fn: %+v", a)
		}

		ch, err := r.Challenges.GetActive(ctx, "officer:ee-1:app:PMC-2026-100003", otpDomain.PurposeStageSignature, now)
		if err != nil {
			return err
		}
		if err := r.Challenges.Consume(ctx, ch.ID, now); err != nil {
			return err
		}

		if err := r.Reviews.Create(ctx, &appDomain.StageReview{
			ApplicationID: a.ID,
			Stage:         appDomain.StageExecutiveEngineer,
			OfficerID:     "ee-1",
			Status:        appDomain.ReviewApproved,
			ApprovalDate:  &now,
		}); err != nil {
			return err
		}
		return r.Applications.UpdateStatus(ctx, a.ID, appDomain.StatusEEPending, appDomain.StatusCEPending)
	}); err != nil {
		t.Fatalf("WithinApplicationTx commit err: %v", err)
	}

	// Verify changes
	got, err := appRepo.GetByNumber(ctx, "PMC-2026-100003")
	if err != nil {
		t.Fatalf("GetByNumber post-commit: %v", err)
	}
	if got.Status != appDomain.StatusCEPending {
		t.Fatalf("status not updated, got=%s", got.Status)
	}
	challenges := NewChallengeRepository(db)
	if _, err := challenges.GetActive(ctx, "officer:ee-1:app:PMC-2026-100003", otpDomain.PurposeStageSignature, now); !errors.Is(err, otpDomain.ErrNotFound) {
		t.Fatalf("challenge must be consumed after commit, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)

	seed := makeApplication("PMC-2026-100004", appDomain.StatusEEPending)
	if err := appRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	now := time.Now().UTC()
	ch := makeChallenge("officer:ee-1:app:PMC-2026-100004", "123456", now, now.Add(10*time.Minute))
	ch.Purpose = string(otpDomain.PurposeStageSignature)
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinApplicationTx(ctx, "PMC-2026-100004", func(r uow.Repos, a *appDomain.Application) error {
		// Consume the challenge and advance, then fail: both must roll back
		ch, err := r.Challenges.GetActive(ctx, "officer:ee-1:app:PMC-2026-100004", otpDomain.PurposeStageSignature, now)
		if err != nil {
			return err
		}
		if err := r.Challenges.Consume(ctx, ch.ID, now); err != nil {
			return err
		}
		if err := r.Applications.UpdateStatus(ctx, a.ID, appDomain.StatusEEPending, appDomain.StatusCEPending); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// After rollback: status unchanged, challenge still live
	got, err := appRepo.GetByNumber(ctx, "PMC-2026-100004")
	if err != nil {
		t.Fatalf("post-rollback GetByNumber: %v", err)
	}
	if got.Status != appDomain.StatusEEPending {
		t.Fatalf("expected ee_pending after rollback, got %s", got.Status)
	}
	challenges := NewChallengeRepository(db)
	if _, err := challenges.GetActive(ctx, "officer:ee-1:app:PMC-2026-100004", otpDomain.PurposeStageSignature, now); err != nil {
		t.Fatalf("challenge must survive rollback: %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_NotFound(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinApplicationTx(ctx, "PMC-2026-999999", func(r uow.Repos, a *appDomain.Application) error {
		t.Fatalf("callback should not be called when application missing")
		return nil
	})
	if !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
