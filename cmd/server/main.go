package main

import (
	"context"
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"contact_backend/internal/app/di"
	"contact_backend/internal/app/router"
	authadapters "contact_backend/internal/feature/auth/adapters"
	authhandler "contact_backend/internal/feature/auth/transport/handler"
	authusecase "contact_backend/internal/feature/auth/usecase"
	contactadapters "contact_backend/internal/feature/contacts/adapters"
	contacthandler "contact_backend/internal/feature/contacts/transport/handler"
	contactusecase "contact_backend/internal/feature/contacts/usecase"
	usershandler "contact_backend/internal/feature/users/transport/handler"
	usersusecase "contact_backend/internal/feature/users/usecase"
	"contact_backend/internal/platform/config"
	infradb "contact_backend/internal/platform/db"
	jwtmw "contact_backend/internal/platform/jwt"
	"contact_backend/internal/platform/ratelimit"
	infraredis "contact_backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB(cfg.DatabaseDSN)
	if cfg.RunMigrations {
		if err := infradb.Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	// Redis（任意: 無い場合はレートリミットとセッションがフォールバック）
	var rdb *redisv9.Client
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set, running without Redis")
	} else if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable, running without it", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	contactRepo := contactadapters.NewContactMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	avatarStore := di.NewAvatarStorage(context.Background(), cfg)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTTL, cfg.EmailTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens, cfg.RefreshTTL)
	contactsUC := contactusecase.NewContactsUsecase(contactRepo)
	usersUC := usersusecase.NewUsersUsecase(userRepo, avatarStore)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	contactsH := contacthandler.NewContactHandler(contactsUC)
	usersH := usershandler.NewUsersHandler(usersUC)

	// レートリミッタ（20リクエスト/60秒がデフォルト）
	limiter := ratelimit.NewRouteLimiter(rdb, cfg.RateLimit, cfg.RateWindow)

	// ルータ生成
	r := router.NewRouter(cfg, authH, contactsH, usersH, limiter)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
