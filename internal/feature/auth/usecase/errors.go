// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound はメールアドレスまたはIDに一致するユーザーがいない場合のエラーです。
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists は登録済みメールアドレスで再登録しようとした場合のエラーです。
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials はログイン失敗時のエラーです。メールとパスワードの
	// どちらが間違っていたかは区別しません。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound はIDに一致するセッションがない場合のエラーです。
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRefreshToken は未知・期限切れ・失効済みのリフレッシュトークンに
	// 対するエラーです。
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
