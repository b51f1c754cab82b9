// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// 同一メールアドレスのユーザーが既に存在する場合はEMAIL_TAKENエラーを返し、
	// ストアを変更しない。
	Create(ctx context.Context, user *model.User) error

	// DeleteByEmail は指定メールアドレスのユーザーを削除する。
	DeleteByEmail(ctx context.Context, email string) error

	// ListAll は全ユーザーを返す。デバッグダンプ専用。
	ListAll(ctx context.Context) ([]model.User, error)
}

// TaskRepository はタスクデータの永続化インターフェース。
// 所有者メールアドレスによる絞り込みが分離不変条件の実体であり、
// 他ユーザーのタスクIDは存在しないIDと区別できない。
type TaskRepository interface {
	// ListByOwner は指定所有者のタスク一覧を返す。該当なしの場合は空スライスを返す。
	ListByOwner(ctx context.Context, email string) ([]model.Task, error)

	// FindByOwnerAndID は所有者とIDでタスクを取得する。見つからない場合はnilを返す。
	FindByOwnerAndID(ctx context.Context, email string, id int64) (*model.Task, error)

	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// Update は所有者とIDが一致するタスクを置き換える。
	// 見つからない場合はTASK_NOT_FOUNDエラーを返す。
	Update(ctx context.Context, task *model.Task) error

	// DeleteByOwnerAndID は所有者とIDが一致するタスクを削除する。
	// 該当タスクが無くてもエラーにしない（フィルタ方式の削除）。
	DeleteByOwnerAndID(ctx context.Context, email string, id int64) error

	// DeleteByOwner は指定所有者の全タスクを削除する。
	DeleteByOwner(ctx context.Context, email string) error

	// ListAll は全タスクを返す。デバッグダンプ専用。
	ListAll(ctx context.Context) ([]model.Task, error)
}
