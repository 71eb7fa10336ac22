package handlers

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/application/media"
)

// maxUploadBytes caps each multipart file read into memory.
const maxUploadBytes = 10 << 20

// formImages reads the multipart files under the given field into upload
// inputs. A request without a multipart body yields an empty slice.
func formImages(c *gin.Context, field string) ([]media.UploadInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	inputs := make([]media.UploadInput, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxUploadBytes {
			return nil, fmt.Errorf("file %s exceeds the %d byte limit", fh.Filename, maxUploadBytes)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		inputs = append(inputs, media.UploadInput{
			Data:        data,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return inputs, nil
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate accepts RFC3339 timestamps with or without a zone offset, and
// bare dates. Empty input yields nil.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", raw)
}
