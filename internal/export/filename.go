// Package export renders documents as downloadable Markdown or PDF files.
package export

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFilenameRunes = 100

var (
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Filename turns a document title into a safe file name stem
func Filename(title string) string {
	name := forbiddenChars.ReplaceAllString(title, "")
	name = whitespaceRun.ReplaceAllString(name, "_")
	if utf8.RuneCountInString(name) > maxFilenameRunes {
		name = string([]rune(name)[:maxFilenameRunes])
	}
	if name == "" {
		return "document"
	}
	return name
}

// ContentDisposition builds an attachment header carrying a UTF-8 file name
func ContentDisposition(filename string) string {
	return "attachment; filename*=UTF-8''" + encodeURIComponent(filename)
}

// encodeURIComponent percent-encodes everything except the RFC 3986
// unreserved set plus !*'() which browsers leave alone.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIComponentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
