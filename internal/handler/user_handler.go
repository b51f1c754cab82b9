package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Withdraw(ctx context.Context, email string) error
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Withdraw は認証済みユーザーのアカウントと所有タスクを削除する。
// DELETE /delete-account
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		writeAPIError(w, model.NewForbiddenError())
		return
	}

	if err := h.service.Withdraw(r.Context(), email); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "アカウントを削除しました。"})
}
