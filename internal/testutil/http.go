// Package testutil holds helpers shared by HTTP and scenario tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ExecuteRequest(req *http.Request, handler http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func CheckResponseCode(t testing.TB, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

// CheckContentType fails unless the recorded response declares want.
func CheckContentType(t testing.TB, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := w.Result().Header.Get("Content-Type"); got != want {
		t.Fatalf("expected Content-Type %q, got %q", want, got)
	}
}

// DecodeJSON decodes body into a fresh T.
func DecodeJSON[T any](t testing.TB, body io.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	return v
}
