// Package models defines the data structures shared by chart layout, rendering and read-back.
package models

// SlotKind identifies the role of a column inside a column block.
type SlotKind int

const (
	// SlotUnit is the leading column holding the study unit label.
	SlotUnit SlotKind = iota
	// SlotDate is the optional column holding the scheduled learning date.
	SlotDate
	// SlotReview is one of the numbered review columns.
	SlotReview
)

// String returns the slot name used in JSON output and logs.
func (k SlotKind) String() string {
	switch k {
	case SlotUnit:
		return "unit"
	case SlotDate:
		return "date"
	case SlotReview:
		return "review"
	default:
		return "unknown"
	}
}

// CellStyle carries the visual treatment of a grid cell.
type CellStyle struct {
	// Header marks cells of a block's header row.
	Header bool `json:"header,omitempty"`
	// AlternateRow marks shaded data rows (even row indices within a block).
	AlternateRow bool `json:"alternate_row,omitempty"`
}

// GridCell is one logical cell produced by the layout engine.
type GridCell struct {
	// Row is the row within the block: 0 is the header, data rows start at 1.
	Row int `json:"row"`
	// Block is the index of the column block owning the cell.
	Block int `json:"block"`
	// Column is the 0-based slot position inside the block.
	Column int `json:"column"`
	// Slot is the role of the column.
	Slot SlotKind `json:"slot"`
	// Review is the 1-based review number for SlotReview cells.
	Review int `json:"review,omitempty"`
	// Content is the text to draw; review data cells are blank.
	Content string `json:"content"`
	// Token is the source token of a data row.
	Token Token `json:"token,omitempty"`
	// Style is the visual treatment.
	Style CellStyle `json:"style"`
}

// CellRow represents a single row of cells read back from a generated workbook.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (1-based, as string) to cell text.
	C map[string]string `json:"c"`
}
