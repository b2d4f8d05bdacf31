package docsystem

import (
	"strings"
	"unicode"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() docsysSvc.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountWords counts whitespace-separated words in markdown text.
// Han, Hiragana, Katakana and Hangul characters count as one word each
// since those scripts don't separate words with spaces.
func (s *contentAnalyzerService) CountWords(markdown string) int {
	text := s.CleanMarkdown(markdown)

	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case isCJK(r):
			count++
			inWord = false
		case unicode.IsSpace(r) || unicode.IsPunct(r) && !inWord:
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// CleanMarkdown removes markdown syntax from text
func (s *contentAnalyzerService) CleanMarkdown(markdown string) string {
	text := s.removeCodeBlocks(markdown)

	// Inline code, emphasis and strike markers
	text = strings.NewReplacer(
		"`", "",
		"**", "",
		"*", "",
		"__", "",
		"~~", "",
		"[[", "",
		"]]", "",
	).Replace(text)

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#>")
		line = strings.TrimSpace(line)

		if line == "---" || line == "***" {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			line = strings.TrimPrefix(line, "- ")
		} else if strings.HasPrefix(line, "+ ") {
			line = strings.TrimPrefix(line, "+ ")
		}
		// Numbered list markers ("1. ", "12. ")
		if i := strings.Index(line, ". "); i > 0 && isDigits(line[:i]) {
			line = line[i+2:]
		}
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// removeCodeBlocks removes ```...``` code blocks from text
func (s *contentAnalyzerService) removeCodeBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			break
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+end+6:]
	}
	return text
}
