package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingMiddlewareCallsNext(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	lm := &LoggingMiddleware{Next: next}

	req := httptest.NewRequest(http.MethodPost, "/inflate", nil)
	rec := httptest.NewRecorder()
	lm.ServeHTTP(rec, req)

	if !called {
		t.Error("Next was not invoked")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
