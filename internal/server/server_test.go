package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rhanlin/graphql-demo/internal/config"
	"github.com/rhanlin/graphql-demo/internal/graph"
	"github.com/rhanlin/graphql-demo/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T, playground bool) (*Server, *observer.ObservedLogs) {
	t.Helper()
	schema, err := graph.NewSchema(&graph.Resolver{Store: store.Default(), MeID: 1})
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}

	core, logs := observer.New(zap.InfoLevel)
	cfg := config.Default().Server
	cfg.Playground = playground

	return New(schema, cfg, zap.New(core)), logs
}

func postGraphQL(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, GraphQLPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGraphQLQuery(t *testing.T) {
	s, _ := setupTestServer(t, true)

	rec := postGraphQL(t, s, `{"query":"{ hello me { name } }"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data struct {
			Hello string
			Me    struct{ Name string }
		}
		Errors []json.RawMessage
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Hello != "world" || resp.Data.Me.Name != "Spencer" {
		t.Errorf("data = %+v", resp.Data)
	}
	if len(resp.Errors) != 0 {
		t.Errorf("errors = %s", resp.Errors)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response has no request id")
	}
}

func TestGraphQLMutationWithVariables(t *testing.T) {
	s, _ := setupTestServer(t, true)

	body := `{
		"query": "mutation Add($input: AddPostInput!) { addPost(input: $input) { id author { name } } }",
		"operationName": "Add",
		"variables": {"input": {"title": "New", "content": "Body"}}
	}`
	rec := postGraphQL(t, s, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data struct {
			AddPost struct {
				ID     string
				Author struct{ Name string }
			}
		}
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.AddPost.ID != "4" || resp.Data.AddPost.Author.Name != "Spencer" {
		t.Errorf("addPost = %+v", resp.Data.AddPost)
	}
}

func TestGraphQLErrorsAreLogged(t *testing.T) {
	s, logs := setupTestServer(t, true)

	req := httptest.NewRequest(http.MethodPost, GraphQLPath,
		strings.NewReader(`{"query":"{ hello post(id: \"abc\") { id } }"}`))
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "req-1" {
		t.Errorf("request id = %q, want %q", got, "req-1")
	}
	if !strings.Contains(rec.Body.String(), `"hello":"world"`) {
		t.Errorf("body = %s, want partial data", rec.Body)
	}

	warned := logs.FilterMessage("graphql error").All()
	if len(warned) != 1 {
		t.Fatalf("graphql error log entries = %d, want 1", len(warned))
	}
	if got := warned[0].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("logged request_id = %v, want req-1", got)
	}

	if n := logs.FilterMessage("request").Len(); n != 1 {
		t.Errorf("access log entries = %d, want 1", n)
	}
}

func TestGraphQLBadRequest(t *testing.T) {
	s, _ := setupTestServer(t, true)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "query"},
		{"missing query", `{"variables":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postGraphQL(t, s, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "invalid request body") {
				t.Errorf("body = %s", rec.Body)
			}
		})
	}
}

func TestPlayground(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		s, _ := setupTestServer(t, true)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, GraphQLPath, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<html") {
			t.Error("playground did not return HTML")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		s, _ := setupTestServer(t, false)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, GraphQLPath, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	s, _ := setupTestServer(t, false)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s, _ := setupTestServer(t, false)
	s.cfg.Port = 0 // let the kernel pick a free port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range config.LogFormats {
		log, err := NewLogger(config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Errorf("NewLogger(%s) error = %v", format, err)
			continue
		}
		if !log.Core().Enabled(zap.DebugLevel) {
			t.Errorf("NewLogger(%s) debug disabled", format)
		}
	}

	if _, err := NewLogger(config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Error("NewLogger() expected error for unknown level")
	}
	if _, err := NewLogger(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("NewLogger() expected error for unknown format")
	}
}

func TestPanicLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &PanicLogger{Log: zap.New(core)}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "abc")
	l.LogPanic(ctx, "boom")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["request_id"] != "abc" {
		t.Errorf("request_id = %v, want abc", entries[0].ContextMap()["request_id"])
	}
}
