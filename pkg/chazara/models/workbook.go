package models

// ChartWorkbook is the read-back view of a generated tabular chart.
type ChartWorkbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string `json:"sheet_order"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
}
