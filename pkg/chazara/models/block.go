package models

// ColumnBlock is one side-by-side partition of the token sequence.
type ColumnBlock struct {
	// Index is the 0-based block position on the page.
	Index int `json:"index"`
	// Tokens are the rows of the block, in sequence order.
	Tokens []Token `json:"tokens"`
	// StartOffset is the index of the block's first token in the full sequence.
	// The first date of the block is startDate + StartOffset days.
	StartOffset int `json:"start_offset"`
}
