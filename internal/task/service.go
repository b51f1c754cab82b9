// Package task はタスク管理のドメインロジックを提供する。
// 全操作が認証済みユーザーのメールアドレスで絞り込まれる。
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// Input はタスク作成・更新リクエストの内容フィールド。
type Input struct {
	Title    string
	Content  string
	Category string
	Priority string
	Tags     string
	Status   string
	Date     string
}

// Service はタスク管理のサービス層。
// 一覧・取得・作成・更新・削除のビジネスロジックを提供する。
type Service struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(taskRepo repository.TaskRepository) *Service {
	return &Service{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// List は所有者のタスク一覧を返す。該当なしの場合は空スライスを返す。
func (s *Service) List(ctx context.Context, owner string) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}
	return tasks, nil
}

// Get は所有者とIDでタスクを取得する。
// 他ユーザーのタスクIDは存在しないIDと同様にTASK_NOT_FOUNDになる。
func (s *Service) Get(ctx context.Context, owner string, id int64) (*model.Task, error) {
	task, err := s.taskRepo.FindByOwnerAndID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(id)
	}
	return task, nil
}

// Create は新しいタスクを作成して返す。
// IDは作成時刻のUnixミリ秒から採番する。
// Statusが空の場合はpending、Dateが空の場合は作成時刻が入る。
func (s *Service) Create(ctx context.Context, owner string, input Input) (*model.Task, error) {
	now := s.now()

	task := &model.Task{
		ID:       now.UnixMilli(),
		Email:    owner,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Priority: input.Priority,
		Tags:     input.Tags,
		Status:   input.Status,
		Date:     input.Date,
	}
	if task.Status == "" {
		task.Status = model.TaskStatusDefault
	}
	if task.Date == "" {
		task.Date = now.Format(time.RFC3339)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("タスクの作成に失敗しました: %w", err)
	}

	slog.Info("task created",
		slog.String("actor", owner),
		slog.Int64("task_id", task.ID),
	)

	return task, nil
}

// Update は所有タスクに入力フィールドを浅くマージして保存し、結果を返す。
// IDと所有者は変更されない。StatusとDateは空の場合のみ既存値を維持する。
// 該当タスクが無い場合はTASK_NOT_FOUNDを返す。
func (s *Service) Update(ctx context.Context, owner string, id int64, input Input) (*model.Task, error) {
	existing, err := s.taskRepo.FindByOwnerAndID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewTaskNotFoundError(id)
	}

	merged := *existing
	merged.Title = input.Title
	merged.Content = input.Content
	merged.Category = input.Category
	merged.Priority = input.Priority
	merged.Tags = input.Tags
	if input.Status != "" {
		merged.Status = input.Status
	}
	if input.Date != "" {
		merged.Date = input.Date
	}

	if err := s.taskRepo.Update(ctx, &merged); err != nil {
		return nil, fmt.Errorf("タスクの更新に失敗しました: %w", err)
	}

	return &merged, nil
}

// Delete は所有者とIDが一致するタスクを削除する。
// 該当タスクが無くても成功として扱う（冪等）。
func (s *Service) Delete(ctx context.Context, owner string, id int64) error {
	if err := s.taskRepo.DeleteByOwnerAndID(ctx, owner, id); err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}
	return nil
}

// DeleteAll は所有者の全タスクを削除する。
func (s *Service) DeleteAll(ctx context.Context, owner string) error {
	if err := s.taskRepo.DeleteByOwner(ctx, owner); err != nil {
		return fmt.Errorf("タスクの一括削除に失敗しました: %w", err)
	}

	slog.Info("all tasks deleted",
		slog.String("actor", owner),
	)

	return nil
}
