package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

func onePKModel(name string, fields ...string) schema.Model {
	fs := []schema.Field{{Name: "id", Type: "AutoField", Primary: true}}
	for _, f := range fields {
		fs = append(fs, schema.Field{Name: f, Type: "CharField"})
	}
	return schema.Model{Name: name, TableName: strings.ToLower(name), Fields: fs}
}

func testSchema() *schema.Schema {
	user := onePKModel("User", "email")
	post := onePKModel("Post", "title")
	post.Relationships = []schema.Relationship{
		{Name: "author", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "auth", TargetModel: "User"},
	}
	sch := &schema.Schema{Apps: map[string]schema.App{
		"auth": {Models: map[string]schema.Model{"User": user}},
		"blog": {Models: map[string]schema.Model{"Post": post}},
	}}
	sch.ResolveFieldNames()
	return sch
}

func testLoader(sch *schema.Schema) SchemaLoader {
	return func(ctx context.Context) (*schema.Schema, error) { return sch, nil }
}

func TestHandleSchemaReturnsFullSchema(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schema/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got schema.Schema
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(got.Apps))
	}
}

func TestHandleModelFound(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/model/blog/Post/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got schema.Model
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Name != "Post" {
		t.Fatalf("expected model Post, got %q", got.Name)
	}
}

func TestHandleModelNotFound(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/model/blog/Missing/", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleLayoutIncludesPositionsAndRoutes(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/layout/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got layoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(got.Positions))
	}
	if len(got.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(got.Routes))
	}
	if len(got.Routes[0].Points) < 2 {
		t.Fatalf("expected route with at least 2 points, got %d", len(got.Routes[0].Points))
	}
}

func TestHandleDiagramSVGReturnsSVGDocument(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/diagram.svg", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("expected image/svg+xml content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Fatalf("expected SVG body, got %q", w.Body.String())
	}
}

func TestHandleSchemaRejectsMalformedExcludeSystem(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schema/?exclude_system=maybe", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleModelAppNotFound(t *testing.T) {
	srv := New(testLoader(testSchema()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/model/nonexistent/Post/", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
