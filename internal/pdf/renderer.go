// Package pdf renders report content into a fixed-layout, watermarked PDF.
// Rendering happens entirely in memory; no temporary files are materialized.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait dimensions in millimetres, used to centre the watermark.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

// Render produces a PDF document from the given body text with watermark
// overlaid diagonally on every page. The watermark is drawn first at 15%
// opacity so it layers beneath the body text and never obscures it.
func Render(content, watermark string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("gfvrho report", true)
	doc.SetMargins(20, 25, 20)
	doc.SetAutoPageBreak(true, 25)

	tr := doc.UnicodeTranslatorFromDescriptor("")

	// Header hook runs at the start of every page, including pages added by
	// the auto page break, so each page carries the watermark.
	doc.SetHeaderFunc(func() {
		doc.SetFont("Helvetica", "B", 48)
		doc.SetTextColor(100, 100, 100)
		doc.SetAlpha(0.15, "Normal")
		doc.TransformBegin()
		doc.TransformRotate(45, pageWidth/2, pageHeight/2)
		w := doc.GetStringWidth(watermark)
		doc.Text(pageWidth/2-w/2, pageHeight/2, tr(watermark))
		doc.TransformEnd()
		doc.SetAlpha(1.0, "Normal")
		doc.SetTextColor(0, 0, 0)
	})

	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(content, "\n") {
		doc.MultiCell(0, 5.5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
