package layout

import (
	"strconv"
	"time"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/ukaji3/chazara-go/pkg/chazara/numerals"
	"go.uber.org/zap"
)

// Options are the per-chart parameters of the grid layout. They are assumed
// to be validated: ReviewCount is positive.
type Options struct {
	ReviewCount       int
	IncludeDate       bool
	AlternateNumerals bool
	StartDate         time.Time
	Dates             DateFormat
	// UnitLabel and DateLabel head the unit and date columns.
	UnitLabel string
	DateLabel string
	// Log receives numeral fallback warnings; nil disables logging.
	Log *zap.Logger
}

// SlotCount is the number of columns in one block.
func (o Options) SlotCount() int {
	n := 1 + o.ReviewCount
	if o.IncludeDate {
		n++
	}
	return n
}

// Slots lists the slot kinds of one block, left to right.
func (o Options) Slots() []models.SlotKind {
	slots := make([]models.SlotKind, 0, o.SlotCount())
	slots = append(slots, models.SlotUnit)
	if o.IncludeDate {
		slots = append(slots, models.SlotDate)
	}
	for i := 0; i < o.ReviewCount; i++ {
		slots = append(slots, models.SlotReview)
	}
	return slots
}

// Grid is the laid-out content of one column block.
type Grid struct {
	Block  models.ColumnBlock
	Header []models.GridCell
	Rows   [][]models.GridCell
}

// Layout lays out one column block: a header row then one row per token.
// Row i of the block is dated StartDate + StartOffset + i days; shading restarts per block.
func Layout(block models.ColumnBlock, opts Options) Grid {
	g := Grid{
		Block:  block,
		Header: header(block.Index, opts),
		Rows:   make([][]models.GridCell, 0, len(block.Tokens)),
	}

	for i, token := range block.Tokens {
		style := models.CellStyle{AlternateRow: i%2 == 0}
		row := make([]models.GridCell, 0, opts.SlotCount())
		col := 0

		row = append(row, models.GridCell{
			Row:     i + 1,
			Block:   block.Index,
			Column:  col,
			Slot:    models.SlotUnit,
			Content: unitLabel(token, opts),
			Token:   token,
			Style:   style,
		})
		col++

		if opts.IncludeDate {
			row = append(row, models.GridCell{
				Row:     i + 1,
				Block:   block.Index,
				Column:  col,
				Slot:    models.SlotDate,
				Content: opts.Dates.Format(AddDays(opts.StartDate, block.StartOffset+i)),
				Token:   token,
				Style:   style,
			})
			col++
		}

		for r := 1; r <= opts.ReviewCount; r++ {
			row = append(row, models.GridCell{
				Row:    i + 1,
				Block:  block.Index,
				Column: col,
				Slot:   models.SlotReview,
				Review: r,
				Token:  token,
				Style:  style,
			})
			col++
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// LayoutAll lays out every block in order.
func LayoutAll(blocks []models.ColumnBlock, opts Options) []Grid {
	grids := make([]Grid, 0, len(blocks))
	for _, b := range blocks {
		grids = append(grids, Layout(b, opts))
	}
	return grids
}

func header(blockIndex int, opts Options) []models.GridCell {
	cells := make([]models.GridCell, 0, opts.SlotCount())
	headerStyle := models.CellStyle{Header: true}

	cells = append(cells, models.GridCell{
		Block:   blockIndex,
		Slot:    models.SlotUnit,
		Content: opts.UnitLabel,
		Style:   headerStyle,
	})
	if opts.IncludeDate {
		cells = append(cells, models.GridCell{
			Block:   blockIndex,
			Column:  len(cells),
			Slot:    models.SlotDate,
			Content: opts.DateLabel,
			Style:   headerStyle,
		})
	}
	for r := 1; r <= opts.ReviewCount; r++ {
		cells = append(cells, models.GridCell{
			Block:   blockIndex,
			Column:  len(cells),
			Slot:    models.SlotReview,
			Review:  r,
			Content: strconv.Itoa(r),
			Style:   headerStyle,
		})
	}
	return cells
}

// unitLabel falls back to the raw token when numeral conversion fails.
func unitLabel(token models.Token, opts Options) string {
	if !opts.AlternateNumerals {
		return string(token)
	}
	s, err := numerals.Convert(token)
	if err != nil {
		if opts.Log != nil {
			opts.Log.Warn("numeral conversion failed, using raw token",
				zap.String("token", string(token)), zap.Error(err))
		}
		return string(token)
	}
	return s
}
