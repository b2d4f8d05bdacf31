package docsystem

import "context"

// ConvertedDocument is an imported file turned into Markdown. Title and Tags
// are set when the file carried them (frontmatter, <title>).
type ConvertedDocument struct {
	Title   string
	Tags    []string
	Content string
}

// ContentConverter converts file content to markdown format.
// Each converter handles a set of file extensions.
//
// Implementations should be stateless and thread-safe.
type ContentConverter interface {
	Convert(ctx context.Context, input []byte) (*ConvertedDocument, error)

	// SupportedExtensions returns extensions including the leading dot
	SupportedExtensions() []string

	// Name returns a human-readable converter name for logging
	Name() string
}

// ContentAnalyzer derives statistics from Markdown content
type ContentAnalyzer interface {
	// CountWords counts words in markdown content
	CountWords(markdown string) int

	// CleanMarkdown removes markdown syntax from content
	CleanMarkdown(markdown string) string
}
