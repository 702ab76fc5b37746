package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	otpDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
)

type ChallengeRepository struct{ db *gorm.DB }

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository { return &ChallengeRepository{db: db} }

func (r *ChallengeRepository) Create(ctx context.Context, c *otpDomain.Challenge) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChallengeRepository) Save(ctx context.Context, c *otpDomain.Challenge) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// GetActive selects the most recent live challenge for the pair. The read is
// not locked: mutation happens through the conditional Consume write and the
// self-committing RegisterFailedAttempt, which serialize on the row
// themselves.
func (r *ChallengeRepository) GetActive(ctx context.Context, identifier string, purpose otpDomain.Purpose, now time.Time) (*otpDomain.Challenge, error) {
	var out otpDomain.Challenge
	res := r.db.WithContext(ctx).
		Where("identifier = ? AND purpose = ? AND active = ? AND used = ? AND expires_at > ?",
			identifier, purpose, true, false, now).
		Order("created_at DESC, id DESC").
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, otpDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ChallengeRepository) DeactivateAll(ctx context.Context, identifier string, purpose otpDomain.Purpose) error {
	return r.db.WithContext(ctx).
		Model(&otpDomain.Challenge{}).
		Where("identifier = ? AND purpose = ? AND active = ?", identifier, purpose, true).
		Update("active", false).Error
}

// RegisterFailedAttempt runs on the repository's own connection in a fresh
// transaction, so the counter commits even when the verification that failed
// rolls its enclosing transaction back. The row lock serializes concurrent
// guesses; the counter cannot skip past the ceiling.
func (r *ChallengeRepository) RegisterFailedAttempt(ctx context.Context, challengeID uint64, max int) (bool, error) {
	var locked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ch otpDomain.Challenge
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ch, challengeID)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return otpDomain.ErrNotFound
		}
		if res.Error != nil {
			return res.Error
		}
		if !ch.Active || ch.Used {
			// raced with a consume or an earlier lockout; nothing to count
			return nil
		}
		ch.AttemptCount++
		if ch.AttemptCount >= max {
			ch.Active = false
			locked = true
		}
		return tx.Model(&ch).
			Select("attempt_count", "active").
			Updates(map[string]any{"attempt_count": ch.AttemptCount, "active": ch.Active}).Error
	})
	return locked, err
}

// Consume is the conditional single-use write. Zero matched rows means the
// challenge is no longer live (used, deactivated or expired), surfaced as
// ErrNotFound like every other dead-challenge state.
func (r *ChallengeRepository) Consume(ctx context.Context, challengeID uint64, now time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&otpDomain.Challenge{}).
		Where("id = ? AND active = ? AND used = ? AND expires_at > ?", challengeID, true, false, now).
		Updates(map[string]any{"used": true, "used_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return otpDomain.ErrNotFound
	}
	return nil
}
