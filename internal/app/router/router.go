// Package router wires handlers, middleware, and routes into the Gin engine.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "contact_backend/internal/feature/auth/transport/handler"
	contacthandler "contact_backend/internal/feature/contacts/transport/handler"
	usershandler "contact_backend/internal/feature/users/transport/handler"
	"contact_backend/internal/platform/config"
	"contact_backend/internal/platform/http/handler"
	jwtmw "contact_backend/internal/platform/jwt"
	"contact_backend/internal/platform/ratelimit"
)

// NewRouter builds the full route table.
func NewRouter(cfg config.Config, authH *authhandler.AuthHandler,
	contactsH *contacthandler.ContactHandler, usersH *usershandler.UsersHandler,
	limiter *ratelimit.RouteLimiter) *gin.Engine {
	r := gin.Default()

	// ブラウザクライアント用CORS設定
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authH.Signup)
	// ログイン（トークンペア発行）
	r.POST("/login", authH.Login)
	// リフレッシュトークンのローテーション
	r.POST("/refresh", authH.Refresh)
	// メールアドレス確認
	r.GET("/auth/confirm/:token", authH.ConfirmEmail)

	// 認証必須のルート
	auth := r.Group("/")
	// リクエストヘッダーにJWTが必要になる
	auth.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		auth.GET("/me", usersH.Profile)
		auth.PATCH("/me/avatar", usersH.UpdateAvatar)

		// 連絡先ルートにはルート単位のレートリミットを適用
		contacts := auth.Group("/contacts")
		contacts.Use(limiter.Middleware())
		{
			contacts.GET("", contactsH.List)
			contacts.GET("/search", contactsH.Search)
			contacts.GET("/birthday", contactsH.Birthdays)
			contacts.GET("/:id", contactsH.Get)
			contacts.POST("", contactsH.Create)
			contacts.PUT("/:id", contactsH.Update)
			contacts.DELETE("/:id", contactsH.Delete)
		}
	}

	return r
}
