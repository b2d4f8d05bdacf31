package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays out a document on A4 pages.
//
// The built-in PDF fonts only cover Latin-1. Set FontFile to a TrueType font
// (for example Noto Sans JP) to render other scripts.
type PDFRenderer struct {
	FontFile string
}

// PDFDocument is the input to Render
type PDFDocument struct {
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type blockStyle struct {
	size       float64
	style      string
	before     float64
	after      float64
	indent     float64
	lineHeight float64
}

var blockStyles = map[BlockKind]blockStyle{
	BlockParagraph: {size: 11, after: 3.5, lineHeight: 6},
	BlockHeading1:  {size: 20, style: "B", before: 5.5, after: 3, lineHeight: 9},
	BlockHeading2:  {size: 16, style: "B", before: 5, after: 2, lineHeight: 8},
	BlockHeading3:  {size: 13, style: "B", before: 4, after: 1.5, lineHeight: 7},
	BlockListItem:  {size: 11, after: 1.5, indent: 6, lineHeight: 6},
	BlockCode:      {size: 10, before: 1, after: 3.5, lineHeight: 5},
}

// Render produces the PDF bytes
func (r PDFRenderer) Render(doc PDFDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("Bansho", false)

	family := "Helvetica"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	updatedLabel, createdLabel := "Updated", "Created"
	if r.FontFile != "" {
		family = "bansho"
		pdf.AddUTF8Font(family, "", r.FontFile)
		pdf.AddUTF8Font(family, "B", r.FontFile)
		translate = func(s string) string { return s }
		updatedLabel, createdLabel = "最終更新", "作成日"
	}

	pdf.AddPage()

	pdf.SetFont(family, "B", 24)
	pdf.MultiCell(0, 11, translate(doc.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(family, "", 10)
	pdf.SetTextColor(102, 102, 102)
	if !doc.UpdatedAt.IsZero() {
		pdf.MultiCell(0, 5, translate(fmt.Sprintf("%s: %s", updatedLabel, doc.UpdatedAt.Format("2006/1/2"))), "", "L", false)
	}
	if !doc.CreatedAt.IsZero() {
		pdf.MultiCell(0, 5, translate(fmt.Sprintf("%s: %s", createdLabel, doc.CreatedAt.Format("2006/1/2"))), "", "L", false)
	}
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	pdf.SetDrawColor(238, 238, 238)
	pdf.Line(left, pdf.GetY()+2, pageWidth-right, pdf.GetY()+2)
	pdf.Ln(7)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFillColor(244, 244, 244)
	for _, block := range ParseBlocks(doc.Content) {
		st := blockStyles[block.Kind]
		text := block.Text
		if block.Kind == BlockListItem {
			text = "- " + text
			if r.FontFile != "" {
				text = "• " + block.Text
			}
		}

		pdf.Ln(st.before)
		pdf.SetFont(family, st.style, st.size)
		pdf.SetX(left + st.indent)
		pdf.MultiCell(0, st.lineHeight, translate(text), "", "L", block.Kind == BlockCode)
		pdf.Ln(st.after)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
