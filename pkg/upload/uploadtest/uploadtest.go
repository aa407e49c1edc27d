// Package uploadtest builds fake image payloads and multipart bodies for tests.
package uploadtest

import (
	"bytes"
	"io"
	"mime/multipart"
)

var (
	pngMagic  = []byte("\x89PNG\x0D\x0A\x1A\x0A")
	jpegMagic = []byte("\xFF\xD8\xFF\xE0")
)

// PNG returns a payload that sniffs as image/png followed by pad filler bytes.
func PNG(pad int) []byte { return withMagic(pngMagic, pad) }

// JPEG returns a payload that sniffs as image/jpeg followed by pad filler bytes.
func JPEG(pad int) []byte { return withMagic(jpegMagic, pad) }

// PNGOfSize returns a PNG payload of exactly size bytes.
func PNGOfSize(size int) []byte {
	if size < len(pngMagic) {
		size = len(pngMagic)
	}
	return PNG(size - len(pngMagic))
}

func withMagic(magic []byte, pad int) []byte {
	out := make([]byte, len(magic)+pad)
	copy(out, magic)
	for i := len(magic); i < len(out); i++ {
		out[i] = byte(i)
	}
	return out
}

// File is one file part of a multipart form.
type File struct {
	Field string
	Name  string
	Data  []byte
}

// Form encodes fields and files as multipart/form-data and returns the body
// with its Content-Type header value.
func Form(fields map[string]string, files ...File) (io.Reader, string) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, f := range files {
		part, _ := mw.CreateFormFile(f.Field, f.Name)
		_, _ = part.Write(f.Data)
	}
	_ = mw.Close()
	return body, mw.FormDataContentType()
}
