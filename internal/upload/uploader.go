// Package upload stores admin-submitted images on local disk and hands back
// the URL path they are served from. Binary in, URL out; the CMS records
// only the URL.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 10 << 20 // 10MB

// URLPrefix is the path uploads are served under.
const URLPrefix = "/uploads/"

// allowedExtensions maps accepted image extensions to their content types.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Uploader writes images into a directory with collision-free UUID names.
type Uploader struct {
	dir string
}

// New creates an Uploader rooted at dir, creating it if needed.
func New(dir string) (*Uploader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Uploader{dir: dir}, nil
}

// Dir returns the directory uploads are stored in, for the static file route.
func (u *Uploader) Dir() string {
	return u.dir
}

// Save stores the image and returns its public URL path. The original
// filename contributes only its extension; the stored name is a UUID so
// uploads never collide or traverse paths.
func (u *Uploader) Save(originalName string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.Must(uuid.NewV7()).String() + ext
	path := filepath.Join(u.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(body, MaxImageSize)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return URLPrefix + name, nil
}
