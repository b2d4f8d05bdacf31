package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

// Registry routes uploaded files to a converter by extension.
// It is built once at startup and only read afterwards.
type Registry struct {
	converters map[string]docsysSvc.ContentConverter // key: ".md", ".html", ...
}

// NewRegistry returns a registry with the Markdown, text and HTML converters
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]docsysSvc.ContentConverter)}
	r.Register(NewMarkdownConverter())
	r.Register(NewTextConverter())
	r.Register(NewHTMLConverter())
	return r
}

// Register associates a converter with each of its extensions
func (r *Registry) Register(c docsysSvc.ContentConverter) {
	for _, ext := range c.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = c
	}
}

// Supports reports whether filename has a registered extension
func (r *Registry) Supports(filename string) bool {
	_, ok := r.converters[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Convert picks the converter for filename and runs it
func (r *Registry) Convert(ctx context.Context, filename string, content []byte) (*docsysSvc.ConvertedDocument, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	c, ok := r.converters[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q (supported: %s)", ext, strings.Join(r.Extensions(), ", "))
	}
	return c.Convert(ctx, content)
}

// Extensions lists registered extensions in sorted order
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
