package models

// SheetData represents one worksheet of a generated chart.
type SheetData struct {
	// Rows contains non-empty rows with cell text.
	Rows []CellRow `json:"rows,omitempty"`
	// Blocks contains the column blocks detected from the header row.
	Blocks []BlockRange `json:"blocks,omitempty"`
	// Setup contains the print and view settings of the sheet.
	Setup PrintSetup `json:"setup"`
}
