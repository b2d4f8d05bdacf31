package export

import (
	"regexp"
	"strings"
)

// MarkdownBody is the exported .md file content
func MarkdownBody(title, content string) string {
	return "# " + title + "\n\n" + content
}

// BlockKind classifies one rendered block
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockListItem
	BlockCode
)

// Block is one unit of the simplified Markdown layout
type Block struct {
	Kind BlockKind
	Text string
}

var (
	bulletItem   = regexp.MustCompile(`^[-*]\s`)
	numberedItem = regexp.MustCompile(`^\d+\.\s(.*)$`)

	boldSyntax   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicSyntax = regexp.MustCompile(`\*(.+?)\*`)
	codeSyntax   = regexp.MustCompile("`(.+?)`")
	linkSyntax   = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
)

// ParseBlocks splits Markdown into headings, list items, fenced code and
// paragraphs. Inline emphasis, code and link syntax is stripped from
// paragraphs. An unterminated fence runs to the end of the content.
func ParseBlocks(content string) []Block {
	var (
		blocks []Block
		inCode bool
		code   []string
	)

	flushCode := func() {
		if len(code) > 0 {
			blocks = append(blocks, Block{Kind: BlockCode, Text: strings.Join(code, "\n")})
			code = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				flushCode()
			}
			inCode = !inCode
			continue
		}
		if inCode {
			code = append(code, line)
			continue
		}

		switch {
		case strings.TrimSpace(line) == "":
			continue
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Block{Kind: BlockHeading1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: BlockHeading2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Kind: BlockHeading3, Text: line[4:]})
		case bulletItem.MatchString(line):
			blocks = append(blocks, Block{Kind: BlockListItem, Text: line[2:]})
		case numberedItem.MatchString(line):
			blocks = append(blocks, Block{Kind: BlockListItem, Text: numberedItem.FindStringSubmatch(line)[1]})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: StripInline(line)})
		}
	}
	flushCode()

	return blocks
}

// StripInline removes bold, italic, inline code and link syntax
func StripInline(s string) string {
	s = boldSyntax.ReplaceAllString(s, "$1")
	s = italicSyntax.ReplaceAllString(s, "$1")
	s = codeSyntax.ReplaceAllString(s, "$1")
	s = linkSyntax.ReplaceAllString(s, "$1")
	return s
}
