package screens

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// maxUploadBytes bounds a single form submission, image included.
const maxUploadBytes = 16 << 20

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// formValue returns the field's value, or nil when the form did not include
// the field at all. The distinction matters: absent fields are omitted from
// the upstream submission.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw := formValue(r, key)
	if raw == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &b, nil
}

func formDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := formValue(r, key)
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &d, nil
}

// formTags splits a comma-separated tags field, dropping empties.
func formTags(r *http.Request, key string) []string {
	raw := formValue(r, key)
	if raw == nil {
		return nil
	}
	parts := strings.Split(*raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func formUpload(r *http.Request, key string) (*gateway.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[key]
	if len(files) == 0 {
		return nil, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return &gateway.Upload{Filename: files[0].Filename, Content: content}, nil
}
