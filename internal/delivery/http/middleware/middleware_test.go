package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestCORSMiddleware_Origins(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"wildcard when unset", nil, "http://a.test", "*"},
		{"explicit wildcard", []string{"*"}, "http://a.test", "*"},
		{"listed origin echoed", []string{"http://a.test"}, "http://a.test", "http://a.test"},
		{"unlisted origin omitted", []string{"http://a.test"}, "http://b.test", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			NewCORSMiddleware(tt.allowed).Handle(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
			assert.Equal(t, http.StatusTeapot, rec.Code)
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCORSMiddleware(nil).Handle(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetOutput(io.Discard)

	rec := httptest.NewRecorder()
	NewLoggingMiddleware(log).Handle(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/api/v1/health", entry.Data["path"])
}
