// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// TaskDeleter は退会時のタスク一括削除インターフェース。
type TaskDeleter interface {
	DeleteByOwner(ctx context.Context, email string) error
}

// Service はユーザー管理のサービス層。
// 退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	taskDeleter TaskDeleter
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, taskDeleter TaskDeleter) *Service {
	return &Service{
		userRepo:    userRepo,
		taskDeleter: taskDeleter,
	}
}

// Withdraw はユーザーの退会処理を実行する。
// 削除順序: tasks → user。該当メールアドレスのタスクとユーザーのみを削除し、
// 他ユーザーのレコードには影響しない。
// 2つのコレクションの削除は独立しており、途中で失敗すると
// タスクだけ消えた状態が残りうる（コレクション間のアトミック性は無い）。
func (s *Service) Withdraw(ctx context.Context, email string) error {
	// ユーザー存在確認
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return model.NewUserNotFoundError()
	}

	slog.Info("退会処理を開始します",
		slog.String("email", email),
	)

	// 1. 所有タスクをカスケード削除
	if err := s.taskDeleter.DeleteByOwner(ctx, email); err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}

	// 2. ユーザーを削除
	if err := s.userRepo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.String("email", email),
	)

	return nil
}
