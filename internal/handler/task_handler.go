package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/task"
	"github.com/hitoshi/taskman/internal/validation"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	List(ctx context.Context, owner string) ([]model.Task, error)
	Get(ctx context.Context, owner string, id int64) (*model.Task, error)
	Create(ctx context.Context, owner string, input task.Input) (*model.Task, error)
	Update(ctx context.Context, owner string, id int64, input task.Input) (*model.Task, error)
	Delete(ctx context.Context, owner string, id int64) error
	DeleteAll(ctx context.Context, owner string) error
}

// TaskHandler はタスク管理のHTTPハンドラー。
// 認証ミドルウェアの後ろに配置され、すべての操作が
// コンテキストの認証済みメールアドレスで絞り込まれる。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{service: service}
}

// taskRequest はタスク作成・更新リクエストのボディ。
type taskRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Tags     string `json:"tags"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

// messageResponse は削除系エンドポイントのレスポンスボディ。
type messageResponse struct {
	Message string `json:"message"`
}

// ListTasks は認証済みユーザーのタスク一覧を返す。
// GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	tasks, err := h.service.List(r.Context(), owner)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// GetTask はIDで1件のタスクを返す。
// GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	t, err := h.service.Get(r.Context(), owner, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// CreateTask は新しいタスクを作成して返す。
// POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	input, ok := decodeTaskInput(w, r)
	if !ok {
		return
	}

	t, err := h.service.Create(r.Context(), owner, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// UpdateTask は既存タスクを更新して返す。
// 内容フィールドは全項目の再送が必要。
// PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	input, ok := decodeTaskInput(w, r)
	if !ok {
		return
	}

	t, err := h.service.Update(r.Context(), owner, id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// DeleteTask はIDで1件のタスクを削除する。該当が無くても成功を返す。
// DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), owner, id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "タスクを削除しました。"})
}

// DeleteAllTasks は認証済みユーザーの全タスクを削除する。
// DELETE /tasks
func (h *TaskHandler) DeleteAllTasks(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	if err := h.service.DeleteAll(r.Context(), owner); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "すべてのタスクを削除しました。"})
}

// taskIDFromURL はパスパラメータからタスクIDを取り出す。
// 数値として解釈できない場合はバリデーションエラーを書き込み、falseを返す。
func taskIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeAPIError(w, model.NewValidationError(map[string]string{
			"id": "id は数値で指定してください。",
		}))
		return 0, false
	}
	return id, true
}

// decodeTaskInput はタスクの内容フィールドをデコードして検証する。
// 検証に失敗した場合はエラーレスポンスを書き込み、falseを返す。
func decodeTaskInput(w http.ResponseWriter, r *http.Request) (task.Input, bool) {
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return task.Input{}, false
	}

	fields := validation.TaskFields{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Priority: req.Priority,
		Tags:     req.Tags,
	}.Validate()
	if len(fields) > 0 {
		writeAPIError(w, model.NewValidationError(fields))
		return task.Input{}, false
	}

	return task.Input{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Priority: req.Priority,
		Tags:     req.Tags,
		Status:   req.Status,
		Date:     req.Date,
	}, true
}
