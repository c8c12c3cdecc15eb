package usecase

import (
	"context"

	"contact_backend/internal/feature/auth/domain/entity"
)

// SessionRepository はリフレッシュトークンセッションの保存先を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters/platform）ではなく
// コンシューマー（usecase）が定義します。RedisとMySQLの2実装があります。
type SessionRepository interface {
	// Create はセッションを保存します。IDはリフレッシュトークン値です。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はトークン値でセッションを取得します。
	// 存在しない場合はErrSessionNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke はRevokedAtを設定してセッションを失効させます。
	Revoke(ctx context.Context, id string) error

	// DeleteExpired は期限切れセッションを削除し、件数を返します。
	// TTLで自動失効するストアでは何もしなくて構いません。
	DeleteExpired(ctx context.Context) (int64, error)
}
