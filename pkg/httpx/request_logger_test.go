package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recLogger) Infof(_ context.Context, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
func (l *recLogger) Warnf(context.Context, string, ...any)  {}
func (l *recLogger) Errorf(context.Context, string, ...any) {}

func TestRequestLogger_SkipsServiceEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log := &recLogger{}
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/api/products/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, target := range []string{"/ping", "/api/products/p-1?x=1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	}

	if len(log.lines) != 1 {
		t.Fatalf("want exactly one access log line, got %d: %v", len(log.lines), log.lines)
	}
	line := log.lines[0]
	for _, want := range []string{"path=/api/products/:id", "status=404", `query="x=1"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q must contain %q", line, want)
		}
	}
}
