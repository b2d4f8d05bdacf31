package converter

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

var titleTag = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// htmlConverter sanitises HTML and converts what is left to Markdown.
// The <title> element, when present, becomes the document title.
type htmlConverter struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewHTMLConverter creates the HTML converter
func NewHTMLConverter() docsysSvc.ContentConverter {
	// UGC keeps formatting, links, images and tables but drops scripts,
	// event handlers and javascript: URLs
	policy := bluemonday.UGCPolicy()

	return &htmlConverter{
		policy:    policy,
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (*docsysSvc.ConvertedDocument, error) {
	raw := string(input)

	var title string
	if m := titleTag.FindStringSubmatch(raw); m != nil {
		title = strings.TrimSpace(html.UnescapeString(m[1]))
		raw = strings.Replace(raw, m[0], "", 1)
	}

	markdown, err := c.converter.ConvertString(c.policy.Sanitize(raw))
	if err != nil {
		return nil, fmt.Errorf("convert HTML to markdown: %w", err)
	}

	return &docsysSvc.ConvertedDocument{Title: title, Content: markdown}, nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
