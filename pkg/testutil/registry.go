package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// JSONResponse returns a handler that replies with a fixed status and JSON body.
func JSONResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// FakeRegistry is an httptest server standing in for an upstream public-data API.
// It counts the requests it receives so tests can assert that no I/O happened.
type FakeRegistry struct {
	*httptest.Server
	hits atomic.Int64
}

// NewFakeRegistry starts a server routing requests through mux. The server is
// closed when the test finishes.
func NewFakeRegistry(t *testing.T, mux *http.ServeMux) *FakeRegistry {
	t.Helper()
	fr := &FakeRegistry{}
	fr.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fr.hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fr.Close)
	return fr
}

// Hits returns the number of requests served so far.
func (f *FakeRegistry) Hits() int64 {
	return f.hits.Load()
}
