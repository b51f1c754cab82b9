package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	registerFunc func(ctx context.Context, user *model.User) (string, error)
	loginFunc    func(ctx context.Context, email, password string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, user *model.User) (string, error) {
	return m.registerFunc(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return m.loginFunc(ctx, email, password)
}

// nopMetrics はテスト用の何もしないメトリクスコレクター。
type nopMetrics struct{}

func (nopMetrics) RecordHTTPRequest(method string, statusCode int) {}
func (nopMetrics) RecordHTTPDuration(duration time.Duration)       {}
func (nopMetrics) RecordLoginSuccess()                             {}
func (nopMetrics) RecordLoginFailure()                             {}
func (nopMetrics) RecordTokenRejected()                            {}

const validRegisterBody = `{
	"name": "山田太郎",
	"email": "taro@example.com",
	"password": "secret123",
	"phone": "090-0000-0000",
	"age": 30,
	"address": "東京都"
}`

func TestAuthHandler_Register_Success(t *testing.T) {
	service := &mockAuthService{
		registerFunc: func(ctx context.Context, user *model.User) (string, error) {
			if user.Email != "taro@example.com" {
				t.Errorf("email = %q, want %q", user.Email, "taro@example.com")
			}
			return "issued-token", nil
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(validRegisterBody))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Errorf("token = %q, want %q", resp.Token, "issued-token")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	service := &mockAuthService{
		registerFunc: func(ctx context.Context, user *model.User) (string, error) {
			t.Error("service should not be called on validation failure")
			return "", nil
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	body := `{"email": "taro@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != model.ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", resp.Code, model.ErrCodeValidationFailed)
	}
	for _, field := range []string{"name", "phone", "age", "address"} {
		if _, ok := resp.Fields[field]; !ok {
			t.Errorf("fields should contain %q, got %v", field, resp.Fields)
		}
	}
	if _, ok := resp.Fields["email"]; ok {
		t.Errorf("fields should not contain email: %v", resp.Fields)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	service := &mockAuthService{
		registerFunc: func(ctx context.Context, user *model.User) (string, error) {
			return "", model.NewEmailTakenError(user.Email)
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(validRegisterBody))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", resp.Code, model.ErrCodeEmailTaken)
	}
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	service := &mockAuthService{
		registerFunc: func(ctx context.Context, user *model.User) (string, error) {
			t.Error("service should not be called on broken JSON")
			return "", nil
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	service := &mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (string, error) {
			if email != "taro@example.com" || password != "secret123" {
				t.Errorf("credentials = (%q, %q), want (%q, %q)", email, password, "taro@example.com", "secret123")
			}
			return "login-token", nil
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	body := `{"email": "taro@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "login-token" {
		t.Errorf("token = %q, want %q", resp.Token, "login-token")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	service := &mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (string, error) {
			return "", model.NewInvalidCredentialsError()
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	body := `{"email": "taro@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("code = %q, want %q", resp.Code, model.ErrCodeInvalidCredentials)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	service := &mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (string, error) {
			t.Error("service should not be called on validation failure")
			return "", nil
		},
	}
	h := NewAuthHandler(service, nopMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
