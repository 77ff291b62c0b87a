package render

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/chazara-go/pkg/chazara/parser"
)

func renderPDF(t *testing.T, doc Document) []byte {
	t.Helper()
	p, err := NewPDF("", nil)
	if err != nil {
		t.Fatalf("NewPDF failed: %v", err)
	}
	var buf bytes.Buffer
	if err := p.Render(context.Background(), doc, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.Bytes()
}

func TestPDFSinglePage(t *testing.T) {
	data := renderPDF(t, testDocument(testSheet("Berachot", 18, 1, false)))
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("Output is not a pdf: %q", data[:min(len(data), 16)])
	}

	summary, err := parser.SummarizePDFBytes(data)
	if err != nil {
		t.Fatalf("SummarizePDF failed: %v", err)
	}
	if summary.Pages != 1 {
		t.Fatalf("Expected 1 page, got %d", summary.Pages)
	}
	text := summary.Text[0]
	for _, want := range []string{"Berachot - Chazara Chart", "Generated on January 1, 2024", "Page 1 | Chazara Charts", "10b"} {
		if !strings.Contains(text, want) {
			t.Errorf("Page text missing %q", want)
		}
	}
	if strings.Contains(text, "Continued") {
		t.Error("Single page chart marked as continued")
	}
}

func TestPDFOverflow(t *testing.T) {
	data := renderPDF(t, testDocument(testSheet("Shabbat", 40, 1, false)))
	summary, err := parser.SummarizePDFBytes(data)
	if err != nil {
		t.Fatalf("SummarizePDF failed: %v", err)
	}
	if summary.Pages != 2 {
		t.Fatalf("Expected 2 pages, got %d", summary.Pages)
	}
	if !strings.Contains(summary.Text[1], "Shabbat - Chazara Chart (Continued)") {
		t.Errorf("Second page lacks continued title: %q", summary.Text[1])
	}
	if strings.Contains(summary.Text[1], "Generated on") {
		t.Error("Continued page repeats the generated-on line")
	}
	for i, text := range summary.Text {
		want := "Page " + string(rune('1'+i)) + " | Chazara Charts"
		if !strings.Contains(text, want) {
			t.Errorf("Page %d text missing footer %q", i+1, want)
		}
	}
}

func TestPDFSheetsStartNewPages(t *testing.T) {
	doc := testDocument(testSheet("Berachot", 4, 1, false), testSheet("Shabbat", 4, 2, false))
	summary, err := parser.SummarizePDFBytes(renderPDF(t, doc))
	if err != nil {
		t.Fatalf("SummarizePDF failed: %v", err)
	}
	if summary.Pages != 2 {
		t.Fatalf("Expected 2 pages, got %d", summary.Pages)
	}
	if !strings.Contains(summary.Text[1], "Shabbat - Chazara Chart") {
		t.Errorf("Second page text = %q", summary.Text[1])
	}
	if !strings.Contains(summary.Text[1], "Page 2") {
		t.Error("Page numbers do not continue across sheets")
	}
}

func TestPDFAlternateNumeralsWithoutFont(t *testing.T) {
	p, err := NewPDF("", nil)
	if err != nil {
		t.Fatalf("NewPDF failed: %v", err)
	}
	d := p.newDocument(testDocument())

	if got := d.text("ב.", "2a"); got != "2a" {
		t.Errorf("text(hebrew) = %q, expected raw token", got)
	}
	if got := d.text("2024-01-01", ""); got != "2024-01-01" {
		t.Errorf("text(latin) = %q", got)
	}
	if d.fallbacks != 1 {
		t.Errorf("fallbacks = %d, expected 1", d.fallbacks)
	}

	// A whole chart still renders
	data := renderPDF(t, testDocument(testSheet("Berachot", 6, 1, true)))
	summary, err := parser.SummarizePDFBytes(data)
	if err != nil {
		t.Fatalf("SummarizePDF failed: %v", err)
	}
	if !strings.Contains(summary.Text[0], "3b") {
		t.Errorf("Fallback tokens missing from page text")
	}
}

func TestNewPDFMissingFont(t *testing.T) {
	if _, err := NewPDF(filepath.Join(t.TempDir(), "missing.ttf"), nil); err == nil {
		t.Error("Expected error for missing font file")
	}
}

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2a", "2a"},
		{"כג.", ".גכ"},
		{"יב:ג", "ג:בי"},
	}
	for _, tt := range tests {
		if result := visualOrder(tt.input); result != tt.expected {
			t.Errorf("visualOrder(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}
