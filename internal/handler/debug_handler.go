package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/taskman/internal/model"
)

// UserLister はデバッグ用の全ユーザー取得インターフェース。
type UserLister interface {
	ListAll(ctx context.Context) ([]model.User, error)
}

// TaskLister はデバッグ用の全タスク取得インターフェース。
type TaskLister interface {
	ListAll(ctx context.Context) ([]model.Task, error)
}

// DebugHandler は開発用のデータダンプエンドポイント。
// DEBUG_ENDPOINTS=true のときのみルーターにマウントされる。
type DebugHandler struct {
	users UserLister
	tasks TaskLister
}

// NewDebugHandler はDebugHandlerを生成する。
func NewDebugHandler(users UserLister, tasks TaskLister) *DebugHandler {
	return &DebugHandler{
		users: users,
		tasks: tasks,
	}
}

// ListUsers は全ユーザーを返す。パスワードハッシュは伏せる。
// GET /debug/users
func (h *DebugHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	for i := range users {
		users[i].Password = ""
	}

	writeJSON(w, http.StatusOK, users)
}

// ListTasks は全ユーザーのタスクを返す。
// GET /debug/tasks
func (h *DebugHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}
