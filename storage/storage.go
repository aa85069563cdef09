package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/config"
)

// ErrObjectNotFound is returned when a reference does not resolve to a stored object
var ErrObjectNotFound = errors.New("object not found")

// Store keeps uploaded images. The rest of the application only ever sees the
// opaque reference returned by Put.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Key builds a unique object key under folder ("projects", "profiles") keeping
// the original file extension
func Key(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

// New selects the backend named by STORAGE_TYPE, defaulting to the filesystem
func New(c map[string]string) (Store, error) {
	switch config.GetString(c, "STORAGE_TYPE", "filesystem") {
	case "s3":
		return NewS3Store(c)
	case "filesystem":
		return NewFilesystemStore(
			config.GetString(c, "STORAGE_DIR", "media"),
			config.GetString(c, "MEDIA_URL", "/media/"),
		)
	default:
		return nil, fmt.Errorf("unknown STORAGE_TYPE %q", config.GetString(c, "STORAGE_TYPE", ""))
	}
}
