package pdf

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender_ProducesPDF(t *testing.T) {
	out, err := Render("Line one\nLine two", "gfvrho Tier 2 Report")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", out[:min(16, len(out))])
	}
}

func TestRender_LongContentPaginates(t *testing.T) {
	content := strings.Repeat("Investment opportunity analysis with relevant metrics.\n", 400)
	out, err := Render(content, "gfvrho Tier 3 Report")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Several pages means several page objects in the PDF body.
	if got := bytes.Count(out, []byte("/Type /Page")); got < 2 {
		t.Fatalf("expected multi-page document, found %d page markers", got)
	}
}

func TestRender_NonASCIIContent(t *testing.T) {
	out, err := Render("Café — naïve génération", "gfvrho Tier 1 Report")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatal("output does not look like a PDF")
	}
}
