// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User は登録済みユーザーです。連絡先の所有者でもありますが、
// contactsフィーチャーからこのエンティティを書き換えることはありません。
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email はログインIDを兼ねるため全ユーザーで一意です。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password はbcryptハッシュです。平文は保存しません。
	Password string `gorm:"size:255;not null"`

	// Confirmed はメール確認済みフラグです。未確認でもログインは可能です。
	Confirmed bool `gorm:"not null;default:false"`

	// Avatar はアップロード済みアバター画像のURLです。未設定なら空文字列。
	Avatar string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
