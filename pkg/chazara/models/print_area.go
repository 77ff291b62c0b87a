package models

// BlockRange represents the cell bounds of one column block.
type BlockRange struct {
	// Ref is the block range in A1 notation, e.g. "A1:E19".
	Ref string `json:"ref"`
	// C1 is the first column (1-based).
	C1 int `json:"c1"`
	// C2 is the last column (1-based, inclusive).
	C2 int `json:"c2"`
	// DataRows is the number of rows below the header holding a unit label.
	DataRows int `json:"data_rows"`
}

// PrintSetup captures page setup and pane state of a worksheet.
type PrintSetup struct {
	Orientation  string    `json:"orientation,omitempty"`
	PaperSize    int       `json:"paper_size,omitempty"`
	FitToPage    bool      `json:"fit_to_page"`
	FitToWidth   int       `json:"fit_to_width"`
	FitToHeight  int       `json:"fit_to_height"`
	CenteredH    bool      `json:"centered_horizontally"`
	MarginLeft   float64   `json:"margin_left"`
	MarginTop    float64   `json:"margin_top"`
	FrozenRows   int       `json:"frozen_rows"`
	ColumnWidths []float64 `json:"column_widths,omitempty"`
}

// PDFSummary is the read-back view of a generated paginated chart.
type PDFSummary struct {
	// Pages is the number of physical pages.
	Pages int `json:"pages"`
	// Text holds the extracted plain text of each page, in order.
	Text []string `json:"text,omitempty"`
}
