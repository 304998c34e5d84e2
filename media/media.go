// Package media stores uploaded note images outside the database. There are
// two drivers: the local filesystem (served back via the /uploads static
// route) and AWS S3.
package media

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrUploadFailed marks any driver failure. A note write must never proceed
// past a failed upload, so callers check for this with errors.Is.
var ErrUploadFailed = errors.New("media upload failed")

// Store is the capability the note service needs: put one file somewhere
// durable and hand back a URI a client can fetch.
type Store interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// objectName builds a collision-free object key that keeps the original
// extension so content types stay guessable.
func objectName(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}
