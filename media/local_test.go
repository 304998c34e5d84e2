package media_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notevault/media"
)

func formFile(t *testing.T, name, contents string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("images", name)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["images"][0]
}

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewLocalStore(dir, "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	uri, err := store.Upload(context.Background(), formFile(t, "photo.png", "fake image bytes"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(uri, "http://localhost:8080/uploads/") {
		t.Errorf("Expected URI under /uploads, got %q", uri)
	}
	if !strings.HasSuffix(uri, ".png") {
		t.Errorf("Expected original extension kept, got %q", uri)
	}

	stored := filepath.Join(dir, filepath.Base(uri))
	contents, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("Stored file unreadable: %v", err)
	}
	if string(contents) != "fake image bytes" {
		t.Errorf("Stored contents mismatch: %q", contents)
	}
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := media.NewLocalStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	first, err := store.Upload(context.Background(), formFile(t, "same.png", "one"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	second, err := store.Upload(context.Background(), formFile(t, "same.png", "two"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if first == second {
		t.Errorf("Uploads with the same filename must not collide: %q", first)
	}
}

func TestLocalStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := media.NewLocalStore(dir, ""); err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected uploads directory to exist: %v", err)
	}
}
