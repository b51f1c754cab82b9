package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/store"
)

// tasksCollection はタスクを保存するコレクション名。
const tasksCollection = "tasks"

// FileTaskRepo はstore.Storeを使用したタスクリポジトリ。
// 全操作が所有者メールアドレスで絞り込まれる。
// 変更操作はread-modify-writeサイクル全体をミューテックスで直列化する。
type FileTaskRepo struct {
	mu    sync.Mutex
	store store.Store
}

// NewFileTaskRepo はFileTaskRepoを生成する。
func NewFileTaskRepo(s store.Store) *FileTaskRepo {
	return &FileTaskRepo{store: s}
}

// ListByOwner は指定所有者のタスク一覧を返す。該当なしの場合は空スライスを返す。
func (r *FileTaskRepo) ListByOwner(ctx context.Context, email string) ([]model.Task, error) {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := []model.Task{}
	for _, t := range tasks {
		if t.Email == email {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// FindByOwnerAndID は所有者とIDでタスクを取得する。見つからない場合はnilを返す。
func (r *FileTaskRepo) FindByOwnerAndID(ctx context.Context, email string, id int64) (*model.Task, error) {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].Email == email && tasks[i].ID == id {
			t := tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

// Create はタスクを作成する。
func (r *FileTaskRepo) Create(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	tasks = append(tasks, *task)
	return r.saveAll(ctx, tasks)
}

// Update は所有者とIDが一致するタスクを置き換える。
// 見つからない場合はTASK_NOT_FOUNDエラーを返す。
func (r *FileTaskRepo) Update(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].Email == task.Email && tasks[i].ID == task.ID {
			tasks[i] = *task
			return r.saveAll(ctx, tasks)
		}
	}
	return model.NewTaskNotFoundError(task.ID)
}

// DeleteByOwnerAndID は所有者とIDが一致するタスクを削除する。
// 該当タスクが無くても成功として扱う（冪等）。
func (r *FileTaskRepo) DeleteByOwnerAndID(ctx context.Context, email string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if !(t.Email == email && t.ID == id) {
			kept = append(kept, t)
		}
	}

	return r.saveAll(ctx, kept)
}

// DeleteByOwner は指定所有者の全タスクを削除する。
func (r *FileTaskRepo) DeleteByOwner(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.Email != email {
			kept = append(kept, t)
		}
	}

	return r.saveAll(ctx, kept)
}

// ListAll は全タスクを返す。デバッグダンプ専用。
func (r *FileTaskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	return r.loadAll(ctx)
}

func (r *FileTaskRepo) loadAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.store.Load(ctx, tasksCollection, &tasks); err != nil {
		return nil, fmt.Errorf("タスクコレクションの読み込みに失敗しました: %w", err)
	}
	return tasks, nil
}

func (r *FileTaskRepo) saveAll(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := r.store.Save(ctx, tasksCollection, tasks); err != nil {
		return fmt.Errorf("タスクコレクションの書き込みに失敗しました: %w", err)
	}
	return nil
}
