// Package upload holds uploaded files in memory and applies the image rules:
// an accepted image type and a size cap in kilobytes.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// KB is the unit of the size limit; file sizes are counted in kibibytes.
const KB = 1024

// imageTypes maps each accepted image MIME type to the extension it is stored under.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/webp": ".webp",
}

// File is an uploaded file read fully into memory.
type File struct {
	Name string // client-supplied file name
	Size int64
	MIME string // sniffed from content, never trusted from the client
	Data []byte
}

// New wraps raw bytes as a File, sniffing the content type.
func New(name string, data []byte) *File {
	return &File{
		Name: filepath.Base(name),
		Size: int64(len(data)),
		MIME: sniff(data),
		Data: data,
	}
}

// FromHeader reads a multipart part into memory, refusing anything larger
// than limit bytes so an oversized part is reported without being buffered.
func FromHeader(fh *multipart.FileHeader, limit int64) (*File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("upload: open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("upload: read %s: %w", fh.Filename, err)
	}

	file := New(fh.Filename, data)
	if fh.Size > file.Size {
		file.Size = fh.Size
	}
	return file, nil
}

// Reader returns a fresh reader over the contents.
func (f *File) Reader() io.Reader { return bytes.NewReader(f.Data) }

// IsImage reports whether the sniffed type is an accepted image type.
func (f *File) IsImage() bool {
	_, ok := imageTypes[f.MIME]
	return ok
}

// Ext is the extension the file is stored under, derived from its content.
func (f *File) Ext() string {
	if ext, ok := imageTypes[f.MIME]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(f.Name))
}

// CheckImage applies the `image|max:<maxKB>` rule pair to f and returns the
// message for field, or "" when f passes. A file of exactly maxKB KiB passes.
func CheckImage(field string, f *File, maxKB int64) string {
	if f == nil {
		return ""
	}
	if !f.IsImage() {
		return fmt.Sprintf("The %s field must be an image.", field)
	}
	if f.Size > maxKB*KB {
		return fmt.Sprintf("The %s field must not be greater than %d kilobytes.", field, maxKB)
	}
	return ""
}

func sniff(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}
