// Package storage stores uploaded binary objects (document images, avatars)
// and hands back the public URL they are served from.
package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
)

// Blob is where an uploaded object ended up
type Blob struct {
	// Key identifies the object inside the store; persist it to delete later
	Key string
	// URL is the public address clients load the object from
	URL string
}

// BlobStore persists uploaded objects
type BlobStore interface {
	// Put writes r under key. An existing object with the same key is replaced.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (*Blob, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeName replaces every character outside [a-zA-Z0-9.-] with an
// underscore so client file names are safe inside object keys
func SanitizeName(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// ReadLimited reads at most limit bytes from r. It returns ErrTooLarge when r
// holds more.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// ErrTooLarge is returned by ReadLimited when the input exceeds the limit
var ErrTooLarge = errors.New("object too large")
