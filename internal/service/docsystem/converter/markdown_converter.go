package converter

import (
	"context"
	"fmt"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

// markdownConverter keeps Markdown as is, lifting title and tags out of an
// optional YAML frontmatter block.
type markdownConverter struct{}

// NewMarkdownConverter creates the Markdown converter
func NewMarkdownConverter() docsysSvc.ContentConverter {
	return &markdownConverter{}
}

func (c *markdownConverter) Convert(ctx context.Context, input []byte) (*docsysSvc.ConvertedDocument, error) {
	meta, body, err := ParseFrontmatter(input)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}
	return &docsysSvc.ConvertedDocument{
		Title:   meta.Title,
		Tags:    meta.Tags,
		Content: body,
	}, nil
}

func (c *markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

func (c *markdownConverter) Name() string {
	return "markdown"
}

// textConverter stores plain text unchanged; plain text is valid Markdown
type textConverter struct{}

// NewTextConverter creates the plain text converter
func NewTextConverter() docsysSvc.ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input []byte) (*docsysSvc.ConvertedDocument, error) {
	return &docsysSvc.ConvertedDocument{Content: string(input)}, nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt"}
}

func (c *textConverter) Name() string {
	return "plaintext"
}
