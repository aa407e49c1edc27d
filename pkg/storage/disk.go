// Package storage is the file store for uploaded images.
//
// Drivers:
//   - "local"      a directory on disk, served publicly under /storage
//   - "s3"         S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//   - "cloudinary" Cloudinary media library
//   - "memory"     in-process map, for tests
//
// Files are addressed by a slash-separated relative path such as
// "categoryImage/3f2a…c1.jpg". That path is what gets persisted on a record;
// Disk.URL turns it into a public URL at render time.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get for a path that does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Disk is implemented by every storage driver.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// PutStream writes everything read from r to path.
	PutStream(ctx context.Context, path string, r io.Reader) error

	// Get returns the content stored at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
