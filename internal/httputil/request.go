package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// MaxJSONBody caps JSON request bodies (10MB)
const MaxJSONBody = 10 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// Bodies larger than MaxJSONBody fail with an error IsTooLarge recognises.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// ParseMultipart parses a multipart form whose whole body is at most maxBytes
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// IsTooLarge reports whether err was caused by a body over its size limit
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
