// Package auth はパスワードハッシュと認証トークンの発行・検証を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost はパスワードハッシュの既定コストファクタ。
const DefaultBcryptCost = 10

// HashPassword は平文パスワードからbcryptハッシュを生成する。
// ソルトとコストはハッシュ文字列自体に埋め込まれる。
// costが範囲外の場合はbcrypt側でエラーになる。
func HashPassword(plain string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}
	return string(digest), nil
}

// CheckPassword は平文パスワードとハッシュを照合する。
// 比較はbcrypt自体が行うため、タイミング攻撃に対して安全。
// 不一致・不正なハッシュのいずれの場合もfalseを返す。
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
