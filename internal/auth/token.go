package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL は認証トークンの既定有効期間。
const DefaultTokenTTL = 12 * time.Hour

// Claims は認証トークンに埋め込むクレーム。
// ユーザーのメールアドレスと発行・失効時刻のみを持つ。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec はHS256署名付きトークンの発行と検証を行う。
// トークンはステートレスであり、有効性は署名と失効時刻のみで決まる。
// ユーザー削除後も失効までトークンは有効なまま残る点に注意。
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec はTokenCodecを生成する。
// ttlが0以下の場合はDefaultTokenTTLを使用する。
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue は指定メールアドレスに対する署名付きトークンを発行する。
func (c *TokenCodec) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗しました: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と失効時刻を検証し、クレームのメールアドレスを返す。
// 改ざん・署名不一致・期限切れのいずれの場合もエラーを返す。
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("トークンの検証に失敗しました: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return "", jwt.ErrTokenMalformed
	}

	return claims.Email, nil
}
