package entity

import "time"

// Session はリフレッシュトークン1つ分の状態です。IDがトークン値そのもの
// （64文字の16進文字列）で、別途トークンカラムは持ちません。
// UserAgentとIPAddressは監査用のメタデータで、検証には使いません。
type Session struct {
	ID        string
	UserID    uint
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
	// RevokedAt が非nilならローテーション済みで再利用不可。
	RevokedAt *time.Time
}

// IsExpired は有効期限を過ぎているかを返します。
func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// IsRevoked は失効済みかを返します。
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid は未失効かつ期限内であることを返します。
// リフレッシュ処理はこの判定だけを信頼します。
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
