// Package redis はアプリケーション共用のRedisクライアントを構築します。
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// NewRedisClient はaddrのRedisに接続し、PINGで疎通を確認します。
// Redisは任意の依存で、呼び出し側はnilクライアントのまま動作を続けます
// （レートリミットはプロセスローカルに、セッションはMySQLにフォールバック）。
func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		if cerr := rdb.Close(); cerr != nil {
			slog.Warn("failed to close Redis client", "error", cerr)
		}
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	slog.Info("connected to Redis", "address", addr)
	return rdb, nil
}
