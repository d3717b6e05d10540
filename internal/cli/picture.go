package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	units "github.com/docker/go-units"

	"github.com/calvinalkan/agenda/internal/fs"
)

var (
	errNotAnImage      = errors.New("not an image")
	errPictureTooLarge = errors.New("picture too large")
)

// loadPicture reads an image file and encodes it as a data URL.
// Files larger than limit bytes are rejected; limit <= 0 disables the check.
func loadPicture(fsys fs.FS, path string, limit int64) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read picture: %w", err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s is %s, the limit is %s",
			errPictureTooLarge, path, units.HumanSize(float64(len(data))), units.HumanSize(float64(limit)))
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s (%s)", errNotAnImage, path, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// describePicture summarizes a stored picture payload for display.
func describePicture(payload string) string {
	if payload == "" {
		return "(none)"
	}

	header, body, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return fmt.Sprintf("opaque, %s", units.HumanSize(float64(len(payload))))
	}

	meta := strings.TrimPrefix(header, "data:")

	mime, _, _ := strings.Cut(meta, ";")
	if mime == "" {
		mime = "unknown"
	}

	size := len(body)

	if strings.HasSuffix(meta, ";base64") {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err == nil {
			size = len(raw)
		}
	}

	return fmt.Sprintf("%s, %s", mime, units.HumanSize(float64(size)))
}
