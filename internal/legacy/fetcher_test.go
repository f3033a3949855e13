package legacy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetReturnsBodyOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"server melted"}`))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, 5*time.Second)
	body, err := f.Get(context.Background(), "x.php")
	if err != nil {
		t.Fatalf("non-2xx must not be an error, got %v", err)
	}
	if body != `{"message":"server melted"}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestGetNetworkErrorIsTyped(t *testing.T) {
	f := NewFetcher("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := f.Get(context.Background(), "x.php")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Kind != FailNetwork {
		t.Fatalf("expected network taxonomy error, got %v", err)
	}
}

func TestPostFormSendsMultipartFields(t *testing.T) {
	var gotBranch, gotPassword string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		gotBranch = r.FormValue("branch")
		gotPassword = r.FormValue("password")
		_, _ = w.Write([]byte(`{"Status":"Success"}`))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, 5*time.Second)
	body, err := f.PostForm(context.Background(), "updatestudentpw.php", map[string]string{
		"branch":   "MB",
		"password": "new456",
	})
	if err != nil {
		t.Fatalf("PostForm: %v", err)
	}
	if gotBranch != "MB" || gotPassword != "new456" {
		t.Fatalf("form fields not received: %q %q", gotBranch, gotPassword)
	}
	if body != `{"Status":"Success"}` {
		t.Fatalf("unexpected body %q", body)
	}
}
