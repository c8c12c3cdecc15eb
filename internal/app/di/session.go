// Package di はアプリケーションコンポーネントを構築するファクトリを提供します。
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "contact_backend/internal/feature/auth/adapters"
	"contact_backend/internal/feature/auth/usecase"
	"contact_backend/internal/platform/session"
)

// sessionKeyPrefix namespaces session records in Redis.
const sessionKeyPrefix = "session"

// NewSessionRepository はセッションストアを選択します。Redisがあれば
// TTL任せのRedis実装を、なければsessionsテーブルを使うMySQL実装を返します。
// どちらを選んでもusecase側の扱いは変わりません。
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb == nil {
		return authadapters.NewSessionMySQL(db)
	}
	return session.NewSessionRedis(rdb, sessionKeyPrefix)
}
