package gateway

import (
	"bytes"
	"io"
	"mime/multipart"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Upload is a binary image payload attached to a create/update submission.
type Upload struct {
	Filename string
	Content  []byte
}

// form builds the multipart submission the storefront API expects: absent
// fields are omitted entirely, booleans go as "true"/"false", array fields as
// a JSON-encoded string, and the image as a file part.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *form) set(key, value string) {
	if f.err != nil {
		return
	}
	f.err = f.w.WriteField(key, value)
}

func (f *form) optString(key string, v *string) {
	if v != nil {
		f.set(key, *v)
	}
}

func (f *form) optBool(key string, v *bool) {
	if v != nil {
		f.set(key, strconv.FormatBool(*v))
	}
}

func (f *form) optDecimal(key string, v *decimal.Decimal) {
	if v != nil {
		f.set(key, v.String())
	}
}

func (f *form) jsonSlice(key string, v []string) {
	if v == nil || f.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		f.err = err
		return
	}
	f.set(key, string(raw))
}

func (f *form) file(key string, u *Upload) {
	if u == nil || f.err != nil {
		return
	}
	part, err := f.w.CreateFormFile(key, u.Filename)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(u.Content)
}

func (f *form) close() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.w.FormDataContentType(), nil
}
