package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/filex"
)

// DiskStore keeps blobs as files in one directory.
type DiskStore struct {
	root   string
	prefix string
}

// NewDiskStore creates dir if needed. Paths returned by Put are dir-relative
// as configured, e.g. "images/<key>".
func NewDiskStore(dir string) (*DiskStore, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &DiskStore{root: root, prefix: filepath.ToSlash(dir)}, nil
}

func (s *DiskStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}

	err := filex.WriteOnce(filepath.Join(s.root, key), body)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", common.ErrBlobExists
		}
		return "", fmt.Errorf("disk put: %w", err)
	}

	return path.Join(s.prefix, key), nil
}
