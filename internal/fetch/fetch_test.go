package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"winnow/internal/fetch"
)

func TestGetContent_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	want := "ID,Statement\n1,Hello.\n"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	rc, err := fetch.GetContent(context.Background(), path)
	if err != nil {
		t.Fatalf("GetContent() returned error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() returned error: %v", err)
	}
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestGetContent_MissingFile(t *testing.T) {
	_, err := fetch.GetContent(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("GetContent() on missing file expected error, got nil")
	}
}

func TestGetContent_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "winnow/0.1" {
			t.Errorf("User-Agent = %q, want winnow/0.1", got)
		}
		io.WriteString(w, "ID,Statement\n1,Hi.\n")
	}))
	defer server.Close()

	data, err := fetch.ReadAll(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ReadAll() returned error: %v", err)
	}
	if string(data) != "ID,Statement\n1,Hi.\n" {
		t.Errorf("content = %q", data)
	}
}

func TestGetContent_URLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := fetch.ReadAll(context.Background(), server.URL); err == nil {
		t.Fatal("ReadAll() on 404 expected error, got nil")
	}
}

func TestGetContent_DeclaredSizeTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "999999999999")
	}))
	defer server.Close()

	if _, err := fetch.GetContent(context.Background(), server.URL); err == nil {
		t.Fatal("GetContent() on oversized Content-Length expected error, got nil")
	}
}

func TestPhaseTimeoutsDeriveFromBudget(t *testing.T) {
	if fetch.HTTPDialTimeout != fetch.HTTPRequestTimeout/6 {
		t.Errorf("HTTPDialTimeout = %v, want %v", fetch.HTTPDialTimeout, fetch.HTTPRequestTimeout/6)
	}
	if fetch.HTTPTLSTimeout != fetch.HTTPRequestTimeout/6 {
		t.Errorf("HTTPTLSTimeout = %v, want %v", fetch.HTTPTLSTimeout, fetch.HTTPRequestTimeout/6)
	}
	if fetch.HTTPResponseHeaderTimeout != fetch.HTTPRequestTimeout/2 {
		t.Errorf("HTTPResponseHeaderTimeout = %v, want %v", fetch.HTTPResponseHeaderTimeout, fetch.HTTPRequestTimeout/2)
	}
}
