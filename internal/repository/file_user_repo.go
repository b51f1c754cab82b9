package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/store"
)

// usersCollection はユーザーを保存するコレクション名。
const usersCollection = "users"

// FileUserRepo はstore.Storeを使用したユーザーリポジトリ。
// 変更操作はread-modify-writeサイクル全体をミューテックスで直列化する。
// 同一プロセス内での後勝ち上書きによる更新喪失はここで防ぐ。
type FileUserRepo struct {
	mu    sync.Mutex
	store store.Store
}

// NewFileUserRepo はFileUserRepoを生成する。
func NewFileUserRepo(s store.Store) *FileUserRepo {
	return &FileUserRepo{store: s}
}

// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
func (r *FileUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// Create はユーザーを作成する。メールアドレス重複時はEMAIL_TAKENエラーを返す。
func (r *FileUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].Email == user.Email {
			return model.NewEmailTakenError(user.Email)
		}
	}

	users = append(users, *user)
	return r.saveAll(ctx, users)
}

// DeleteByEmail は指定メールアドレスのユーザーを削除する。
// 該当ユーザーが存在しない場合もエラーにしない。
func (r *FileUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	kept := users[:0]
	for _, u := range users {
		if u.Email != email {
			kept = append(kept, u)
		}
	}

	return r.saveAll(ctx, kept)
}

// ListAll は全ユーザーを返す。デバッグダンプ専用。
func (r *FileUserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	return r.loadAll(ctx)
}

func (r *FileUserRepo) loadAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.store.Load(ctx, usersCollection, &users); err != nil {
		return nil, fmt.Errorf("ユーザーコレクションの読み込みに失敗しました: %w", err)
	}
	return users, nil
}

func (r *FileUserRepo) saveAll(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	if err := r.store.Save(ctx, usersCollection, users); err != nil {
		return fmt.Errorf("ユーザーコレクションの書き込みに失敗しました: %w", err)
	}
	return nil
}
