// Package dto はauthフィーチャーのリクエスト/レスポンス型を定義します。
// バリデーションはGinのbindingタグでトランスポート境界にて行います。
package dto

// SignupReq はPOST /signupのボディです。パスワードは8文字以上。
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq はPOST /loginのボディです。
// パスワード長はここでは検証しません。登録時の要件を推測させないためです。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq はPOST /refreshのボディです。
// リフレッシュトークンは64文字の16進文字列で、形式が違うものは
// ストアに問い合わせる前に弾きます。
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required,len=64,hexadecimal"`
}

// TokenPair は/loginと/refreshが返すトークンの組です。
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
