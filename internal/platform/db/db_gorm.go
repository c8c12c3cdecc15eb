// Package db opens the application database and runs schema migrations.
package db

import (
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authadapters "contact_backend/internal/feature/auth/adapters"
	authentity "contact_backend/internal/feature/auth/domain/entity"
	contactentity "contact_backend/internal/feature/contacts/domain/entity"
)

// 起動直後のMySQLを待つためのリトライ設定。
const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// OpenDB connects to MySQL with the given DSN, retrying for up to a minute
// so the process survives a database that is still starting.
func OpenDB(dsn string) *gorm.DB {
	deadline := time.Now().Add(connectTimeout)
	for {
		db, err := gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		if err == nil {
			return db
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after %s: %v", connectTimeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	// マイグレーション（User, Contact, Session）
	return db.AutoMigrate(
		&authentity.User{},
		&contactentity.Contact{},
		&authadapters.SessionModel{},
	)
}
