package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domainDL "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
)

const keyPrefix = "dl:token:"

// TokenStore keeps download tokens in redis. The key TTL is the retention
// window; logical expiry is judged against the token's own expires_at so a
// late redemption can still be told apart from a token that never existed.
type TokenStore struct{ rdb *redis.Client }

func NewTokenStore(rdb *redis.Client) *TokenStore { return &TokenStore{rdb: rdb} }

func (s *TokenStore) Put(ctx context.Context, t *domainDL.Token, retain time.Duration) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+t.Token, payload, retain).Err()
}

func (s *TokenStore) Get(ctx context.Context, token string) (*domainDL.Token, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainDL.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var out domainDL.Token
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TokenStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
