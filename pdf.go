package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10
	pdfLineHeight = 5
	pdfFontSize   = 9
	pdfTabWidth   = 4
	pdfTextWidth  = pdfPageWidth - 2*pdfMargin
)

// pdfReport renders the same blocks as the text report into a PDF with
// syntax highlighted content. gofpdf keeps the document in memory until Close.
type pdfReport struct {
	path  string
	pdf   *gofpdf.Fpdf
	style *chroma.Style
	tr    func(string) string
	ended bool
	done  bool
}

func newPDFReport(path string) *pdfReport {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	// Core fonts are cp1252; translate UTF-8 content instead of printing mojibake.
	return &pdfReport{path: path, pdf: pdf, style: style, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *pdfReport) Begin(generatedAt time.Time) error {
	p.pdf.AddPage()
	p.pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.MultiCell(pdfTextWidth, pdfLineHeight+1,
		p.tr("Project File Scan - Generated on "+generatedAt.Format(timestampLayout)), "", "L", false)
	p.pdf.Ln(pdfLineHeight)
	return p.pdf.Error()
}

func (p *pdfReport) WriteBlock(rec FileRecord) error {
	p.pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.MultiCell(pdfTextWidth, pdfLineHeight, p.tr("File: "+rec.Path), "", "L", false)
	p.pdf.SetFont("Helvetica", "", pdfFontSize)
	p.pdf.MultiCell(pdfTextWidth, pdfLineHeight, p.tr("Type: "+rec.Key), "", "L", false)
	p.pdf.Line(pdfMargin, p.pdf.GetY(), pdfPageWidth-pdfMargin, p.pdf.GetY())
	p.pdf.Ln(pdfLineHeight / 2)

	if rec.Result.Err != nil {
		p.pdf.SetFont("Courier", "", pdfFontSize)
		p.pdf.SetTextColor(255, 0, 0)
		p.pdf.MultiCell(pdfTextWidth, pdfLineHeight,
			p.tr(fmt.Sprintf("Error reading %s: %v", rec.Path, rec.Result.Err)), "", "L", false)
	} else if err := p.writeHighlighted(string(rec.Result.Content), rec.Path); err != nil {
		p.pdf.SetFont("Courier", "", pdfFontSize)
		p.pdf.SetTextColor(0, 0, 0)
		p.pdf.MultiCell(pdfTextWidth, pdfLineHeight, p.tr(string(rec.Result.Content)), "", "L", false)
	}
	p.pdf.Ln(pdfLineHeight)
	return p.pdf.Error()
}

func (p *pdfReport) End(s Summary) error {
	p.pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.Ln(pdfLineHeight)
	p.pdf.MultiCell(pdfTextWidth, pdfLineHeight, "Scan Summary", "", "L", false)
	p.pdf.Ln(pdfLineHeight / 2)

	var b strings.Builder
	fmt.Fprintf(&b, "Total files scanned: %d\n", s.TotalFiles)
	if s.TokensCounted {
		fmt.Fprintf(&b, "Total tokens: %d\n", s.TotalTokens)
	}
	b.WriteString("\nFiles by type:\n")
	for _, key := range s.Keys() {
		fmt.Fprintf(&b, "%s: %d files\n", key, s.CountsByKey[key])
	}
	p.pdf.SetFont("Helvetica", "", pdfFontSize)
	p.pdf.MultiCell(pdfTextWidth, pdfLineHeight, p.tr(b.String()), "", "L", false)
	p.ended = true
	return p.pdf.Error()
}

// Close writes the document to disk. Without a preceding End the partial
// document is discarded.
func (p *pdfReport) Close() error {
	if p.done {
		return nil
	}
	p.done = true
	if !p.ended {
		return nil
	}
	if err := p.pdf.OutputFileAndClose(p.path); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", p.path, err)
	}
	return nil
}

// writeHighlighted writes code token by token, picking the lexer from the
// filename first and the content second.
func (p *pdfReport) writeHighlighted(code, filename string) error {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	p.pdf.SetFont("Courier", "", pdfFontSize)
	fg := p.style.Get(chroma.Text).Colour
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := p.style.Get(token.Type)
		fontStyle := ""
		if entry.Bold == chroma.Yes {
			fontStyle += "B"
		}
		if entry.Italic == chroma.Yes {
			fontStyle += "I"
		}
		p.pdf.SetFontStyle(fontStyle)

		switch {
		case entry.Colour.IsSet():
			p.pdf.SetTextColor(int(entry.Colour.Red()), int(entry.Colour.Green()), int(entry.Colour.Blue()))
		case fg.IsSet():
			p.pdf.SetTextColor(int(fg.Red()), int(fg.Green()), int(fg.Blue()))
		default:
			p.pdf.SetTextColor(0, 0, 0)
		}

		p.pdf.Write(pdfLineHeight, p.tr(strings.ReplaceAll(token.Value, "\t", strings.Repeat(" ", pdfTabWidth))))
	}
	p.pdf.Ln(-1)
	return nil
}
