// Package objectstore stores user avatars in an object storage bucket.
package objectstore

import (
	"context"
	"io"
	"strings"
)

// Store uploads and removes objects by key.
type Store interface {
	// Upload writes size bytes from r under key and returns the public URL of the object.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// publicURL joins base and key, base must not be empty.
func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
