package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStore writes uploads to a directory on disk. Deployments using it
// serve the directory back under /uploads.
type LocalStore struct {
	Dir string
	// BaseURL prefixes returned URIs, e.g. "http://localhost:8080".
	// Empty yields root-relative URIs.
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrUploadFailed, file.Filename, err)
	}
	defer src.Close()

	name := objectName(file.Filename)
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrUploadFailed, path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Don't leave a truncated file behind for the static route to serve.
		os.Remove(path)
		return "", fmt.Errorf("%w: writing %s: %v", ErrUploadFailed, path, err)
	}

	logrus.WithFields(logrus.Fields{"file": file.Filename, "stored": name}).Debug("stored upload locally")
	return s.BaseURL + "/uploads/" + name, nil
}
