// Package backendtest runs a scripted HRM backend for tests.
package backendtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"hrmconsole/internal/platform/backend"
	"hrmconsole/internal/platform/metrics"
)

// Call is one request the fake received.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type Server struct {
	Client  *backend.Client
	Metrics *metrics.Collector

	srv    *httptest.Server
	mu     sync.Mutex
	routes map[string]string
	calls  []Call
}

// New starts a fake backend. Unscripted paths answer 404.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{routes: map[string]string{}, Metrics: metrics.New()}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)

	client, err := backend.New(s.srv.URL, 5*time.Second, s.Metrics)
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	s.Client = client
	return s
}

// Handle scripts the raw JSON body returned for a path.
func (s *Server) Handle(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = body
}

// OK scripts a successful envelope carrying the given tables.
func (s *Server) OK(path string, tables map[string]any) {
	s.Handle(path, Envelope(1, "Success", tables))
}

// Envelope renders a backend envelope.
func Envelope(status int, message string, tables map[string]any) string {
	doc := map[string]any{"statusCode": status, "message": message}
	if tables != nil {
		doc["dataFetch"] = tables
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo filters calls by path.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	body, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}
