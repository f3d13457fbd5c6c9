// Package storage keeps uploaded image bytes in a write-once blob store.
package storage

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store writes blobs once. Writing an existing key fails with
// common.ErrBlobExists. The returned path is what gets recorded with the
// image and listed back to the user.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// NewKey derives a fresh, collision-free key from an uploaded file name.
// Directory components of the client-supplied name are dropped, whichever
// separator the client used.
func NewKey(fileName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/")
	base := path.Base(name)
	if base == "." || base == ".." || base == "/" || base == "" {
		base = "upload"
	}
	return uuid.NewString() + "-" + base
}
