package di

import (
	"context"
	"log/slog"

	usersusecase "contact_backend/internal/feature/users/usecase"
	"contact_backend/internal/platform/config"
	"contact_backend/internal/platform/storage"
)

// NewAvatarStorage creates the S3-backed avatar store when a bucket is
// configured. Without one it returns nil and avatar uploads are rejected
// at the usecase level; the rest of the API keeps working.
func NewAvatarStorage(ctx context.Context, cfg config.Config) usersusecase.AvatarStorage {
	if cfg.S3Bucket == "" {
		slog.Warn("S3_BUCKET not set, avatar uploads disabled")
		return nil
	}

	st, err := storage.NewS3Storage(ctx, storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		slog.Error("failed to initialize avatar storage", "error", err)
		return nil
	}
	return st
}
