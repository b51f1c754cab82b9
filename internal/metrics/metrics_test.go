package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// CollectorはMetricsCollectorインターフェースを満たすことを検証
func TestCollector_ImplementsInterface(t *testing.T) {
	var _ MetricsCollector = (*Collector)(nil)
}

func TestHandler_ServesRecordedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPRequest(http.MethodGet, http.StatusOK)
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordTokenRejected()

	handler := Handler(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	text := string(body)

	for _, metric := range []string{
		"taskman_http_requests_total",
		"taskman_login_success_total",
		"taskman_login_fail_total",
		"taskman_token_rejected_total",
	} {
		if !strings.Contains(text, metric) {
			t.Errorf("expected metric %q in scrape output", metric)
		}
	}
}

func TestHTTPMiddleware_RecordsMethodAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	mw := NewHTTPMiddleware(c)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/tasks/1", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	scrape := httptest.NewRecorder()
	Handler(reg).ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(scrape.Result().Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if !strings.Contains(string(body), `taskman_http_requests_total{method="DELETE",status_code="404"} 1`) {
		t.Errorf("expected DELETE/404 counter in scrape output:\n%s", body)
	}
}

func TestHTTPMiddleware_BodyWithoutWriteHeader_Records200(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	mw := NewHTTPMiddleware(c)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	scrape := httptest.NewRecorder()
	Handler(reg).ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(scrape.Result().Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if !strings.Contains(string(body), `taskman_http_requests_total{method="GET",status_code="200"} 1`) {
		t.Errorf("expected GET/200 counter in scrape output:\n%s", body)
	}
}
