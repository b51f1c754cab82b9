// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/taskman/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// actorContextKey はリクエストコンテキストに認証済みメールアドレスを格納するためのキー。
var actorContextKey = contextKey("actor")

// TokenVerifier はトークン検証に必要なインターフェース。
// auth.TokenCodecの部分集合として定義する。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenRejectionRecorder はトークン検証失敗の計数インターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type TokenRejectionRecorder interface {
	RecordTokenRejected()
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証するミドルウェアを返す。
// ヘッダーが無い・形式不正の場合は403、トークン検証に失敗した場合は401を返し、
// ハンドラーには到達させない。検証失敗はrecorderに計上する。
// 検証済みメールアドレスをリクエストコンテキストに注入する。
// タスク操作の分離はこの注入されたメールアドレスによる絞り込みのみで成立する。
func NewAuthMiddleware(verifier TokenVerifier, recorder TokenRejectionRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			header := r.Header.Get("Authorization")
			if header == "" {
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}

			// 2. トークンの署名と失効時刻を検証
			email, err := verifier.Verify(parts[1])
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("error", err.Error()),
				)
				recorder.RecordTokenRejected()
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 認証済みメールアドレスをコンテキストに注入
			ctx := context.WithValue(r.Context(), actorContextKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext はリクエストコンテキストから認証済みメールアドレスを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func ActorFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(actorContextKey).(string)
	if !ok || email == "" {
		return "", fmt.Errorf("actor not found in context")
	}
	return email, nil
}

// ContextWithActor はコンテキストに認証済みメールアドレスを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, actorContextKey, email)
}
