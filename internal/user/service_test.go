package user

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/store"
)

func seedUser(t *testing.T, users *repository.FileUserRepo, email string) {
	t.Helper()
	err := users.Create(context.Background(), &model.User{
		Name:     "A",
		Email:    email,
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Phone:    "1",
		Age:      30,
		Address:  "addr",
	})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
}

func seedTask(t *testing.T, tasks *repository.FileTaskRepo, id int64, email string) {
	t.Helper()
	err := tasks.Create(context.Background(), &model.Task{
		ID: id, Email: email, Title: "t", Content: "c",
		Category: "cat", Priority: "hi", Tags: "x",
		Status: "pending", Date: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Create task: %v", err)
	}
}

func TestService_Withdraw_RemovesExactlyUserAndTheirTasks(t *testing.T) {
	s := store.NewMemoryStore()
	users := repository.NewFileUserRepo(s)
	tasks := repository.NewFileTaskRepo(s)
	svc := NewService(users, tasks)
	ctx := context.Background()

	seedUser(t, users, "a@x.com")
	seedUser(t, users, "b@x.com")
	seedTask(t, tasks, 1, "a@x.com")
	seedTask(t, tasks, 2, "b@x.com")
	seedTask(t, tasks, 3, "a@x.com")

	if err := svc.Withdraw(ctx, "a@x.com"); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	// 退会ユーザーのレコードが消えていること
	gone, err := users.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if gone != nil {
		t.Error("expected a@x.com to be deleted")
	}

	mine, err := tasks.ListByOwner(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("len(mine) = %d, want 0", len(mine))
	}

	// 他ユーザーのレコードが無傷であること
	other, err := users.FindByEmail(ctx, "b@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if other == nil {
		t.Error("expected b@x.com to remain")
	}

	theirs, err := tasks.ListByOwner(ctx, "b@x.com")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(theirs) != 1 {
		t.Errorf("len(theirs) = %d, want 1", len(theirs))
	}
}

func TestService_Withdraw_UnknownUser_ReturnsUserNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewService(repository.NewFileUserRepo(s), repository.NewFileTaskRepo(s))

	err := svc.Withdraw(context.Background(), "nobody@x.com")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("err = %v, want USER_NOT_FOUND", err)
	}
}

// --- モックによる失敗系テスト ---

// mockTaskDeleter はTaskDeleterのモック実装。
type mockTaskDeleter struct {
	deleteByOwnerFn func(ctx context.Context, email string) error
}

func (m *mockTaskDeleter) DeleteByOwner(ctx context.Context, email string) error {
	if m.deleteByOwnerFn != nil {
		return m.deleteByOwnerFn(ctx, email)
	}
	return nil
}

func TestService_Withdraw_TaskDeletionFails_UserIsKept(t *testing.T) {
	s := store.NewMemoryStore()
	users := repository.NewFileUserRepo(s)
	deleter := &mockTaskDeleter{
		deleteByOwnerFn: func(ctx context.Context, email string) error {
			return errors.New("disk failure")
		},
	}
	svc := NewService(users, deleter)
	ctx := context.Background()

	seedUser(t, users, "a@x.com")

	if err := svc.Withdraw(ctx, "a@x.com"); err == nil {
		t.Fatal("expected error when task deletion fails")
	}

	// タスク削除に失敗した場合、ユーザーは削除されない
	remaining, err := users.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if remaining == nil {
		t.Error("expected user to remain when cascade fails")
	}
}
