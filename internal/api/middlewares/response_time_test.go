package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/okarpov/bookshelf-api/internal/api/middlewares"
)

func TestResponseTime_SetsHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	wrapped := mw.ResponseTime(handler)

	req := httptest.NewRequest("GET", "/books/", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get("X-Response-Time") == "" {
		t.Error("Expected X-Response-Time header")
	}
}

func TestResponseTime_SetsHeaderWhenNothingWritten(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	wrapped := mw.ResponseTime(handler)

	req := httptest.NewRequest("GET", "/books/", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get("X-Response-Time") == "" {
		t.Error("Expected X-Response-Time header even without a body")
	}
}
