package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

// SummarizePDF counts the pages of a PDF document and extracts their plain text.
func SummarizePDF(r io.ReaderAt, size int64) (models.PDFSummary, error) {
	var summary models.PDFSummary

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return summary, fmt.Errorf("open pdf: %w", err)
	}

	summary.Pages = reader.NumPage()
	for i := 1; i <= summary.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			summary.Text = append(summary.Text, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return summary, fmt.Errorf("read page %d: %w", i, err)
		}
		summary.Text = append(summary.Text, strings.TrimSpace(text))
	}
	return summary, nil
}

// SummarizePDFBytes is SummarizePDF over an in-memory document.
func SummarizePDFBytes(data []byte) (models.PDFSummary, error) {
	return SummarizePDF(bytes.NewReader(data), int64(len(data)))
}
