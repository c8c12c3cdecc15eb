// Package session はRedisバックエンドのリフレッシュトークンストアを提供します。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"contact_backend/internal/feature/auth/domain/entity"
	"contact_backend/internal/feature/auth/usecase"
)

// revokedTTL は失効済みセッションを監査用に保持する期間です。
const revokedTTL = 24 * time.Hour

// SessionRedis はusecase.SessionRepositoryのRedis実装です。
// 有効期限はキーのTTLに委譲するため、期限切れ掃除の処理を持ちません。
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// SessionRedisがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis はprefix配下にセッションを保存するストアを生成します。
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix}
}

func (r *SessionRedis) key(id string) string {
	return r.prefix + ":" + id
}

// put serializes the session and stores it under its key with ttl.
func (r *SessionRedis) put(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.key(session.ID), data, ttl).Err()
}

// Create はセッションをExpiresAtまでのTTL付きで保存します。
// 既に期限切れのセッションはRedisに書かずエラーを返します。
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	return r.put(ctx, session, ttl)
}

// FindByID はトークン値でセッションを取得します。
// キーがTTLで消えていた場合もusecase.ErrSessionNotFoundになります。
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Revoke はRevokedAtを設定して書き戻します。即削除ではなく短いTTLで
// 残すことで、ローテーション済みトークンの再利用試行を観測できます。
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now
	return r.put(ctx, session, revokedTTL)
}

// DeleteExpired は何もしません。期限切れはRedisのTTLが処理します。
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
