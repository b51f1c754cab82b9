// Package validation はリクエストペイロードの必須フィールド検証を提供する。
// ストレージに依存しない純粋関数のみで構成する。
package validation

import "fmt"

// Registration は登録リクエストの検証対象フィールド。
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Age      int
	Address  string
}

// Validate は不足フィールドごとのメッセージを返す。空マップなら妥当。
// Ageは0以下を未指定として扱う。
func (r Registration) Validate() map[string]string {
	missing := map[string]string{}
	requireString(missing, "name", r.Name)
	requireString(missing, "email", r.Email)
	requireString(missing, "password", r.Password)
	requireString(missing, "phone", r.Phone)
	if r.Age <= 0 {
		missing["age"] = requiredMessage("age")
	}
	requireString(missing, "address", r.Address)
	return missing
}

// Login はログインリクエストの検証対象フィールド。
type Login struct {
	Email    string
	Password string
}

// Validate は不足フィールドごとのメッセージを返す。空マップなら妥当。
func (l Login) Validate() map[string]string {
	missing := map[string]string{}
	requireString(missing, "email", l.Email)
	requireString(missing, "password", l.Password)
	return missing
}

// TaskFields はタスク作成・更新リクエストの検証対象フィールド。
// statusとdateは省略可能で、省略時はサーバー側の既定値が入る。
// 更新も内容フィールド全体の再送を要求する（部分更新でも全項目必須）。
type TaskFields struct {
	Title    string
	Content  string
	Category string
	Priority string
	Tags     string
}

// Validate は不足フィールドごとのメッセージを返す。空マップなら妥当。
func (f TaskFields) Validate() map[string]string {
	missing := map[string]string{}
	requireString(missing, "title", f.Title)
	requireString(missing, "content", f.Content)
	requireString(missing, "category", f.Category)
	requireString(missing, "priority", f.Priority)
	requireString(missing, "tags", f.Tags)
	return missing
}

func requireString(missing map[string]string, field, value string) {
	if value == "" {
		missing[field] = requiredMessage(field)
	}
}

func requiredMessage(field string) string {
	return fmt.Sprintf("%s は必須です。", field)
}
