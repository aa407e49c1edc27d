// Package bind decodes request forms into structs.
//
// Text fields are matched by their `form` tag. File parts are read
// separately with File so their size can be bounded before buffering.
package bind

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/shashiranjanraj/backoffice/pkg/upload"
)

// ErrBadForm wraps every decoding failure; callers answer it with a 400.
var ErrBadForm = errors.New("bind: malformed form")

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to temporary files.
const multipartMemory = 8 << 20

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	return d
}()

// Form parses a multipart or url-encoded body capped at maxBody bytes and
// decodes its text fields into dest.
func Form(w http.ResponseWriter, r *http.Request, dest any, maxBody int64) error {
	if err := parse(w, r, maxBody); err != nil {
		return err
	}
	if err := decoder.Decode(dest, r.PostForm); err != nil {
		return fmt.Errorf("%w: %v", ErrBadForm, err)
	}
	return nil
}

// File returns the uploaded file in field, or nil when the field is absent
// or empty. At most limit+1 bytes are read so oversize parts are still
// reported with their declared size.
func File(r *http.Request, field string, limit int64) (*upload.File, error) {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	f, err := upload.FromHeader(fh, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadForm, err)
	}
	return f, nil
}

func parse(w http.ResponseWriter, r *http.Request, maxBody int64) error {
	if maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	}

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: request body too large (max %d bytes)", ErrBadForm, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", ErrBadForm, err)
}
