package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

type sessionRepository struct {
	redisClient *redis.Client
}

func NewSessionRepository(redisClient *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{redisClient: redisClient}
}

func sessionKey(userID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", domainRepo.KeyCurrentUser, userID, tokenID)
}

func refreshTokenKey(userID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", domainRepo.KeyRefreshTokenPrefix, userID, tokenID)
}

// Save persists the session. The user copy never carries the password.
func (r *sessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	stored := *session
	stored.User = session.User.WithoutPassword()

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.redisClient.Set(ctx, sessionKey(session.User.ID, session.TokenID), raw, ttl).Err()
}

func (r *sessionRepository) Find(ctx context.Context, userID, tokenID string) (*entity.Session, error) {
	raw, err := r.redisClient.Get(ctx, sessionKey(userID, tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) RefreshUser(ctx context.Context, user entity.User) error {
	keys, err := r.scanKeys(ctx, sessionKey(user.ID, "*"))
	if err != nil {
		return err
	}

	for _, key := range keys {
		raw, err := r.redisClient.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return err
		}

		var session entity.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		session.User = user.WithoutPassword()

		updated, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if err := r.redisClient.SetArgs(ctx, key, updated, redis.SetArgs{KeepTTL: true, Mode: "XX"}).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, userID, tokenID string) error {
	return r.redisClient.Del(ctx, sessionKey(userID, tokenID)).Err()
}

// DeleteAllForUser revokes every session and refresh token of the user
// (e.g. when an admin deactivates the account).
func (r *sessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	sessionKeys, err := r.scanKeys(ctx, sessionKey(userID, "*"))
	if err != nil {
		return err
	}
	refreshKeys, err := r.scanKeys(ctx, refreshTokenKey(userID, "*"))
	if err != nil {
		return err
	}

	keys := append(sessionKeys, refreshKeys...)
	if len(keys) == 0 {
		return nil
	}
	return r.redisClient.Del(ctx, keys...).Err()
}

func (r *sessionRepository) SaveRefreshToken(ctx context.Context, userID, tokenID string, ttl time.Duration) error {
	return r.redisClient.Set(ctx, refreshTokenKey(userID, tokenID), "valid", ttl).Err()
}

func (r *sessionRepository) ConsumeRefreshToken(ctx context.Context, userID, tokenID string) (bool, error) {
	deleted, err := r.redisClient.Del(ctx, refreshTokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (r *sessionRepository) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := r.redisClient.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	return keys, nil
}
