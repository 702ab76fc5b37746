package challengemock

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is an in-memory challenge repository with the same selection
// semantics as the mysql one: most recent live challenge wins. A mutex
// stands in for the row lock.
type Repo struct {
	mu     sync.Mutex
	nextID uint64
	rows   []*domain.Challenge
}

func New() *Repo { return &Repo{} }

func (m *Repo) Create(ctx context.Context, c *domain.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	cp := *c
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *Repo) GetActive(ctx context.Context, identifier string, purpose domain.Purpose, now time.Time) (*domain.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var live []*domain.Challenge
	for _, row := range m.rows {
		if row.Identifier == identifier && row.Purpose == purpose && row.Live(now) {
			live = append(live, row)
		}
	}
	if len(live) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].CreatedAt.Equal(live[j].CreatedAt) {
			return live[i].ID > live[j].ID
		}
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})
	cp := *live[0]
	return &cp, nil
}

func (m *Repo) DeactivateAll(ctx context.Context, identifier string, purpose domain.Purpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Identifier == identifier && row.Purpose == purpose && row.Active {
			row.Active = false
		}
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.ID == c.ID {
			cp := *c
			m.rows[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *Repo) RegisterFailedAttempt(ctx context.Context, challengeID uint64, max int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID != challengeID {
			continue
		}
		if !row.Active || row.Used {
			return false, nil
		}
		row.AttemptCount++
		if row.AttemptCount >= max {
			row.Active = false
			return true, nil
		}
		return false, nil
	}
	return false, domain.ErrNotFound
}

func (m *Repo) Consume(ctx context.Context, challengeID uint64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID != challengeID {
			continue
		}
		if !row.Live(now) {
			return domain.ErrNotFound
		}
		row.Used = true
		at := now
		row.UsedAt = &at
		return nil
	}
	return domain.ErrNotFound
}

// All exposes a snapshot for assertions.
func (m *Repo) All() []domain.Challenge {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Challenge, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out
}
