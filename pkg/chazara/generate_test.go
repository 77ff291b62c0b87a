package chazara

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/chazara-go/pkg/chazara/corpus"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/ukaji3/chazara-go/pkg/chazara/parser"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	catalog, err := corpus.Load()
	if err != nil {
		t.Fatalf("corpus.Load failed: %v", err)
	}
	g, err := New(DefaultSettings(), catalog, nil, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func intp(n int) *models.FlexInt {
	v := models.FlexInt(n)
	return &v
}

func boolp(b bool) *bool {
	return &b
}

func baseRequest() models.ChartRequest {
	return models.ChartRequest{
		ContentIDs:  []string{"Berachot"},
		StartUnit:   2,
		StartSub:    models.SubUnitFirst,
		EndUnit:     10,
		EndSub:      models.SubUnitSecond,
		Granularity: models.PerSubUnit,
		ReviewCount: intp(3),
		StartDate:   "2024-01-01",
		Format:      models.FormatTabular,
	}
}

func openWorkbook(t *testing.T, a *models.ChartArtifact) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestGenerateSubUnitChart(t *testing.T) {
	g := newTestGenerator(t)
	artifact, err := g.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if artifact.Filename != "Berachot-chazara-chart.xlsx" {
		t.Errorf("Filename = %q", artifact.Filename)
	}
	if !strings.Contains(artifact.MIMEType, "spreadsheetml") {
		t.Errorf("MIMEType = %q", artifact.MIMEType)
	}

	f := openWorkbook(t, artifact)
	rows, err := parser.ExtractCells(f, "Berachot")
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}
	if len(rows) != 19 {
		t.Fatalf("Expected header + 18 rows, got %d", len(rows))
	}
	var header []string
	for col := 1; col <= 5; col++ {
		header = append(header, parser.Cell(rows[0], col))
	}
	if !reflect.DeepEqual(header, []string{"Daf", "Date", "1", "2", "3"}) {
		t.Errorf("Header = %v", header)
	}
	if parser.Cell(rows[1], 1) != "2a" || parser.Cell(rows[1], 2) != "2024-01-01" {
		t.Errorf("Row 1 = %v", rows[1].C)
	}
	if parser.Cell(rows[18], 1) != "10b" || parser.Cell(rows[18], 2) != "2024-01-18" {
		t.Errorf("Row 18 = %v", rows[18].C)
	}
}

func TestGenerateAlternateNumerals(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.UseAlternateNumerals = boolp(true)

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	f := openWorkbook(t, artifact)
	tests := map[string]string{"A2": "ב.", "A3": "ב:", "A19": "י:"}
	for cell, expected := range tests {
		value, _ := f.GetCellValue("Berachot", cell)
		if value != expected {
			t.Errorf("%s = %q, expected %q", cell, value, expected)
		}
	}
}

func TestGenerateOversizedTokenFallsBack(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.UseAlternateNumerals = boolp(true)
	req.Pages = []models.Token{"9223372036854775807", "10000b", "2a"}

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	f := openWorkbook(t, artifact)
	tests := map[string]string{"A2": "9223372036854775807", "A3": "10000b", "A4": "ב."}
	for cell, expected := range tests {
		value, _ := f.GetCellValue("Berachot", cell)
		if value != expected {
			t.Errorf("%s = %q, expected %q", cell, value, expected)
		}
	}
}

func TestGenerateColumnBlocks(t *testing.T) {
	tests := []struct {
		name      string
		pages     []models.Token
		columns   int
		sizes     []int
		firstDate map[int]string
	}{
		{"two blocks", nil, 2, []int{9, 9}, map[int]string{7: "2024-01-10"}},
		{"short final block", []models.Token{"2a", "2b", "3a", "3b", "4a", "4b", "5a", "5b", "6a", "6b"}, 3,
			[]int{4, 4, 2}, map[int]string{7: "2024-01-05", 12: "2024-01-09"}},
	}

	g := newTestGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Pages = tt.pages
			req.ColumnsPerPage = intp(tt.columns)

			artifact, err := g.Generate(context.Background(), req)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			f := openWorkbook(t, artifact)
			blocks, err := parser.DetectBlocks(f, "Berachot")
			if err != nil {
				t.Fatalf("DetectBlocks failed: %v", err)
			}
			var sizes []int
			for _, b := range blocks {
				sizes = append(sizes, b.DataRows)
			}
			if !reflect.DeepEqual(sizes, tt.sizes) {
				t.Errorf("Block sizes = %v, expected %v", sizes, tt.sizes)
			}

			rows, _ := parser.ExtractCells(f, "Berachot")
			for col, date := range tt.firstDate {
				if got := parser.Cell(rows[1], col); got != date {
					t.Errorf("First date in column %d = %q, expected %q", col, got, date)
				}
			}
		})
	}
}

func TestGenerateClampsColumns(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.ColumnsPerPage = intp(12)

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	blocks, _ := parser.DetectBlocks(openWorkbook(t, artifact), "Berachot")
	if len(blocks) != g.Settings().MaxColumns {
		t.Errorf("Expected %d blocks, got %d", g.Settings().MaxColumns, len(blocks))
	}
}

func TestGenerateDefaults(t *testing.T) {
	g := newTestGenerator(t)
	req := models.ChartRequest{ContentIDs: []string{"Horayot"}}

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rows, _ := parser.ExtractCells(openWorkbook(t, artifact), "Horayot")

	// Whole dafs 2..14, three reviews, a date column starting today
	if len(rows) != 14 {
		t.Fatalf("Expected 14 rows, got %d", len(rows))
	}
	if parser.Cell(rows[0], 5) != "3" || parser.Cell(rows[0], 6) != "" {
		t.Errorf("Header = %v", rows[0].C)
	}
	if parser.Cell(rows[1], 1) != "2" || parser.Cell(rows[1], 2) != "2024-03-10" {
		t.Errorf("Row 1 = %v", rows[1].C)
	}
	if parser.Cell(rows[13], 1) != "14" {
		t.Errorf("Last row = %v", rows[13].C)
	}
}

func TestGenerateClampsRangeToCorpus(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.ContentIDs = []string{"Horayot"}
	req.StartUnit = 1
	req.EndUnit = 99

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rows, _ := parser.ExtractCells(openWorkbook(t, artifact), "Horayot")
	if parser.Cell(rows[1], 1) != "2a" || parser.Cell(rows[len(rows)-1], 1) != "14b" {
		t.Errorf("Range = %s..%s", parser.Cell(rows[1], 1), parser.Cell(rows[len(rows)-1], 1))
	}
}

func TestGenerateMishnayotItems(t *testing.T) {
	g := newTestGenerator(t)
	req := models.ChartRequest{
		Corpus:               "mishnayot",
		ContentIDs:           []string{"Berakhot"},
		StartUnit:            1,
		StartItem:            4,
		EndUnit:              2,
		EndItem:              2,
		Granularity:          models.PerSubUnit,
		UseAlternateNumerals: boolp(true),
		StartDate:            "2024-01-01",
	}

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rows, _ := parser.ExtractCells(openWorkbook(t, artifact), "Berakhot")
	var units []string
	for _, r := range rows {
		units = append(units, parser.Cell(r, 1))
	}
	expected := []string{"Mishnah", "א:ד", "א:ה", "ב:א", "ב:ב"}
	if !reflect.DeepEqual(units, expected) {
		t.Errorf("Units = %v, expected %v", units, expected)
	}
}

func TestGenerateMishnaBerura(t *testing.T) {
	g := newTestGenerator(t)
	req := models.ChartRequest{
		Corpus:     "mishna-berura",
		ContentIDs: []string{"Laws of Chanukah"},
		StartDate:  "2024-01-01",
	}

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	f := openWorkbook(t, artifact)
	rows, _ := parser.ExtractCells(f, "Laws of Chanukah")
	if parser.Cell(rows[0], 1) != "Siman" || parser.Cell(rows[1], 1) != "670" || len(rows) != 17 {
		t.Errorf("Rows = %d, first = %v", len(rows), rows[1].C)
	}
}

func TestGenerateMultipleContentIDs(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.ContentIDs = []string{"Berachot", " ", "Shabbat"}

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	f := openWorkbook(t, artifact)
	if !reflect.DeepEqual(f.GetSheetList(), []string{"Berachot", "Shabbat"}) {
		t.Errorf("Sheets = %v", f.GetSheetList())
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ChartRequest)
		field  string
		target error
	}{
		{"no content", func(r *models.ChartRequest) { r.ContentIDs = nil }, "tractates", ErrNoContent},
		{"blank content", func(r *models.ChartRequest) { r.ContentIDs = []string{"  "} }, "tractates", ErrNoContent},
		{"inverted range", func(r *models.ChartRequest) { r.StartUnit, r.EndUnit = 10, 2 }, "range", ErrInvertedRange},
		{"inverted sub-units", func(r *models.ChartRequest) {
			r.StartUnit, r.EndUnit = 5, 5
			r.StartSub, r.EndSub = models.SubUnitSecond, models.SubUnitFirst
		}, "range", ErrInvertedRange},
		{"zero reviews", func(r *models.ChartRequest) { r.ReviewCount = intp(0) }, "reviews", nil},
		{"too many reviews", func(r *models.ChartRequest) { r.ReviewCount = intp(11) }, "reviews", nil},
		{"zero columns", func(r *models.ChartRequest) { r.ColumnsPerPage = intp(0) }, "columnsPerPage", nil},
		{"unknown corpus", func(r *models.ChartRequest) { r.Corpus = "zohar" }, "corpus", corpus.ErrUnknownCorpus},
		{"unknown format", func(r *models.ChartRequest) { r.Format = "docx" }, "format", nil},
		{"unknown content without range", func(r *models.ChartRequest) {
			r.ContentIDs = []string{"Tosefta"}
			r.EndUnit = 0
		}, "range", corpus.ErrUnknownContent},
		{"empty page token", func(r *models.ChartRequest) { r.Pages = []models.Token{"2a", ""} }, "pages", nil},
		{"bad granularity", func(r *models.ChartRequest) { r.Granularity = "half" }, "granularity", nil},
		{"unknown content beyond row limit", func(r *models.ChartRequest) {
			r.ContentIDs = []string{"Custom"}
			r.StartUnit, r.EndUnit = 1, 3000000
		}, "range", ErrTooManyRows},
		{"too many pages", func(r *models.ChartRequest) {
			r.Pages = make([]models.Token, DefaultSettings().MaxRows+1)
			for i := range r.Pages {
				r.Pages[i] = "2a"
			}
		}, "pages", ErrTooManyRows},
	}

	g := newTestGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			artifact, err := g.Generate(context.Background(), req)
			if artifact != nil {
				t.Error("Expected no artifact")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, expected %q", ve.Field, tt.field)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Error %v does not wrap %v", err, tt.target)
			}
		})
	}
}

func TestGenerateUnknownContentWithRange(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.ContentIDs = []string{"Custom Study"}

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if artifact.Filename != "Custom Study-chazara-chart.xlsx" {
		t.Errorf("Filename = %q", artifact.Filename)
	}
}

func TestGenerateRowLimit(t *testing.T) {
	catalog, err := corpus.Load()
	if err != nil {
		t.Fatalf("corpus.Load failed: %v", err)
	}
	settings := DefaultSettings()
	settings.MaxRows = 10
	g, err := New(settings, catalog, nil, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name    string
		endUnit int
		wantErr bool
	}{
		{"at limit", 6, false},
		{"sub-units past limit", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.EndUnit = models.FlexInt(tt.endUnit)

			_, err := g.Generate(context.Background(), req)
			if tt.wantErr {
				if !IsValidation(err) || !errors.Is(err, ErrTooManyRows) {
					t.Errorf("Expected row limit ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Generate failed: %v", err)
			}
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.ColumnsPerPage = intp(2)
	req.UseAlternateNumerals = boolp(true)

	first, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	a, b := unzip(t, first.Data), unzip(t, second.Data)
	delete(a, "docProps/core.xml")
	delete(b, "docProps/core.xml")
	if !reflect.DeepEqual(a, b) {
		t.Error("Same request produced different workbooks")
	}
}

func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to read zip: %v", err)
	}
	out := make(map[string][]byte)
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", file.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read %s: %v", file.Name, err)
		}
		out[file.Name] = b
	}
	return out
}

func TestGeneratePDFOverflow(t *testing.T) {
	g := newTestGenerator(t)
	req := baseRequest()
	req.Format = models.FormatPaginated
	req.EndUnit = 21 // 40 sub-units

	artifact, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if artifact.Filename != "Berachot-chazara-chart.pdf" || artifact.MIMEType != "application/pdf" {
		t.Errorf("Artifact = %s (%s)", artifact.Filename, artifact.MIMEType)
	}

	summary, err := parser.SummarizePDFBytes(artifact.Data)
	if err != nil {
		t.Fatalf("SummarizePDF failed: %v", err)
	}
	if summary.Pages != 2 {
		t.Fatalf("Expected 2 pages, got %d", summary.Pages)
	}
	if !strings.Contains(summary.Text[1], "(Continued)") {
		t.Errorf("Second page lacks continued band: %q", summary.Text[1])
	}
	if !strings.Contains(summary.Text[0], "Page 1") || !strings.Contains(summary.Text[1], "Page 2") {
		t.Error("Page numbers do not increase across pages")
	}
}

func TestGenerateCanceled(t *testing.T) {
	g := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, baseRequest())
	var re *RenderError
	if !errors.As(err, &re) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected RenderError wrapping context.Canceled, got %v", err)
	}
	if re.ContentID != "Berachot" || re.Format != models.FormatTabular {
		t.Errorf("RenderError = %+v", re)
	}
}

func TestPayload(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorPayload
	}{
		{"no content", NewValidationError("tractates", "missing", ErrNoContent),
			ErrorPayload{Error: "Please provide at least one tractate"}},
		{"validation", NewValidationError("reviews", "must be between 1 and 10", nil),
			ErrorPayload{Error: "invalid reviews: must be between 1 and 10"}},
		{"excel render", NewRenderError("Berachot", models.FormatTabular, "render", errors.New("disk full")),
			ErrorPayload{Error: "Failed to generate Excel file", Details: "disk full"}},
		{"pdf render", NewRenderError("Berachot", models.FormatPaginated, "render", errors.New("bad font")),
			ErrorPayload{Error: "Failed to generate PDF file", Details: "bad font"}},
		{"other", errors.New("boom"), ErrorPayload{Error: "Internal error", Details: "boom"}},
	}

	for _, tt := range tests {
		if result := Payload(tt.err); result != tt.expected {
			t.Errorf("%s: Payload = %+v, expected %+v", tt.name, result, tt.expected)
		}
	}

	b, _ := json.Marshal(Payload(NewValidationError("tractates", "missing", ErrNoContent)))
	if string(b) != `{"error":"Please provide at least one tractate"}` {
		t.Errorf("Payload JSON = %s", b)
	}
}

func TestFlexIntRequest(t *testing.T) {
	var req models.ChartRequest
	body := `{"tractates":["Berachot"],"startUnit":"2","endUnit":3,"reviews":"4","columnsPerPage":2,"dafPerDay":false}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if req.StartUnit != 2 || req.EndUnit != 3 || *req.ReviewCount != 4 || *req.ColumnsPerPage != 2 {
		t.Errorf("Request = %+v", req)
	}
	if DefaultSettings().Granularity(req) != models.PerSubUnit {
		t.Error("dafPerDay=false should select sub-units")
	}
}

func TestInspect(t *testing.T) {
	g := newTestGenerator(t)
	dir := t.TempDir()

	req := baseRequest()
	req.ColumnsPerPage = intp(2)
	xlsx, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	xlsxPath := filepath.Join(dir, xlsx.Filename)
	if err := os.WriteFile(xlsxPath, xlsx.Data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	result, err := Inspect(xlsxPath)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	sheet := result.Workbook.Sheets["Berachot"]
	if len(sheet.Blocks) != 2 || sheet.Setup.FrozenRows != 1 || len(sheet.Setup.ColumnWidths) != 10 {
		t.Errorf("Sheet = blocks %d, setup %+v", len(sheet.Blocks), sheet.Setup)
	}

	req.Format = models.FormatPaginated
	pdf, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	pdfPath := filepath.Join(dir, pdf.Filename)
	if err := os.WriteFile(pdfPath, pdf.Data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	result, err = Inspect(pdfPath)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if result.PDF == nil || result.PDF.Pages != 1 {
		t.Errorf("PDF summary = %+v", result.PDF)
	}

	if _, err := Inspect(filepath.Join(dir, "missing.xlsx")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Inspect(missing) error = %v, expected ErrFileNotFound", err)
	}
	txt := filepath.Join(dir, "notes.txt")
	os.WriteFile(txt, []byte("x"), 0o644)
	if _, err := Inspect(txt); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Inspect(txt) error = %v, expected ErrInvalidFormat", err)
	}
}
