// Package wikilink parses [[Title]] links inside Markdown content.
//
// Every position handled by this package is a rune offset, so editors that
// count characters rather than bytes agree with the server.
package wikilink

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var pattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

const (
	openBrackets  = "[["
	closeBrackets = "]]"
)

// Link is one wiki link found in content
type Link struct {
	Title     string `json:"title"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	FullMatch string `json:"fullMatch"`
}

// InputState describes whether the cursor sits inside an unfinished [[...
type InputState struct {
	IsActive      bool   `json:"isActive"`
	Query         string `json:"query"`
	StartPosition int    `json:"startPosition"`
}

var inactive = InputState{StartPosition: -1}

// Extract returns every link in content in order of appearance.
// Titles are trimmed; links whose title is blank are skipped.
func Extract(content string) []Link {
	matches := pattern.FindAllStringSubmatchIndex(content, -1)
	links := make([]Link, 0, len(matches))

	// walk byte offsets once, converting to rune offsets as we go
	bytePos, runePos := 0, 0
	toRune := func(b int) int {
		runePos += utf8.RuneCountInString(content[bytePos:b])
		bytePos = b
		return runePos
	}

	for _, m := range matches {
		title := strings.TrimSpace(content[m[2]:m[3]])
		if title == "" {
			continue
		}
		start := toRune(m[0])
		end := toRune(m[1])
		links = append(links, Link{
			Title:     title,
			Start:     start,
			End:       end,
			FullMatch: content[m[0]:m[1]],
		})
	}
	return links
}

// UniqueTitles returns the distinct link titles in order of first appearance
func UniqueTitles(content string) []string {
	seen := make(map[string]struct{})
	titles := make([]string, 0)
	for _, l := range Extract(content) {
		if _, ok := seen[l.Title]; ok {
			continue
		}
		seen[l.Title] = struct{}{}
		titles = append(titles, l.Title)
	}
	return titles
}

// TransformToMarkdown rewrites wiki links as Markdown links. Known titles
// point at the editor, unknown ones at #not-found.
func TransformToMarkdown(content string, titleToID map[string]string) string {
	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		title := strings.TrimSpace(match[len(openBrackets) : len(match)-len(closeBrackets)])
		if id, ok := titleToID[title]; ok {
			return "[" + title + "](/editor?id=" + id + ")"
		}
		return "[" + title + "](#not-found)"
	})
}

// LinkAt returns the link whose span contains pos (inclusive at both ends)
func LinkAt(content string, pos int) (Link, bool) {
	for _, l := range Extract(content) {
		if pos >= l.Start && pos <= l.End {
			return l, true
		}
	}
	return Link{}, false
}

// InputStateAt reports whether cursor follows an open [[ that has not been
// closed, and the partial title typed so far. A newline ends input mode.
func InputStateAt(content string, cursor int) InputState {
	runes := []rune(content)
	cursor = clamp(cursor, len(runes))
	before := string(runes[:cursor])

	idx := strings.LastIndex(before, openBrackets)
	if idx < 0 {
		return inactive
	}

	tail := before[idx:]
	if strings.Contains(tail, closeBrackets) {
		return inactive
	}

	query := tail[len(openBrackets):]
	if strings.Contains(query, "\n") {
		return inactive
	}

	return InputState{
		IsActive:      true,
		Query:         query,
		StartPosition: utf8.RuneCountInString(before[:idx]),
	}
}

// Insert places [[title]] at cursor, replacing a partial [[query when the
// cursor is in input mode. It returns the new content and cursor position.
func Insert(content string, cursor int, title string) (string, int) {
	runes := []rune(content)
	cursor = clamp(cursor, len(runes))
	link := openBrackets + title + closeBrackets
	linkLen := utf8.RuneCountInString(link)

	start := cursor
	if state := InputStateAt(content, cursor); state.IsActive {
		start = state.StartPosition
	}

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(link)
	b.WriteString(string(runes[cursor:]))
	return b.String(), start + linkLen
}

// Contains reports whether content links to title
func Contains(content, title string) bool {
	for _, l := range Extract(content) {
		if l.Title == title {
			return true
		}
	}
	return false
}

func clamp(pos, max int) int {
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}
