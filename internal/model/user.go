// Package model はドメインモデルを定義する。
package model

// User はサービス利用ユーザーを表す。
// Emailが一意キーであり、大文字小文字は保存時のまま区別する。
// Passwordには平文ではなくbcryptハッシュのみを保持する。
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
}
