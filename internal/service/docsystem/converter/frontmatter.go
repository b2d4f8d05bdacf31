package converter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata block recognised at the top of Markdown files:
//
//	---
//	title: Meeting notes
//	tags: [work, weekly]
//	---
type Frontmatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// ParseFrontmatter splits an optional frontmatter block from the body.
// Content without a leading "---" line is returned unchanged.
func ParseFrontmatter(content []byte) (Frontmatter, string, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return Frontmatter{}, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return Frontmatter{}, "", errors.New("missing closing '---' delimiter")
	}

	var meta Frontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &meta); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse YAML: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)

	body := string(bytes.Join(lines[closing+1:], []byte("\n")))
	return meta, strings.TrimLeft(body, "\r\n"), nil
}
