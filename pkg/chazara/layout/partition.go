// Package layout computes chart grids: column blocks, header and data cells,
// dates, and the page geometry of the paginated output.
package layout

import "github.com/ukaji3/chazara-go/pkg/chazara/models"

// Partition splits tokens into blockCount contiguous blocks of ceil(len/blockCount)
// tokens each. The last blocks may be shorter or empty. A blockCount below 1 is treated as 1.
func Partition(tokens []models.Token, blockCount int) []models.ColumnBlock {
	if blockCount < 1 {
		blockCount = 1
	}

	perBlock := (len(tokens) + blockCount - 1) / blockCount
	blocks := make([]models.ColumnBlock, blockCount)
	for i := range blocks {
		start := min(i*perBlock, len(tokens))
		end := min(start+perBlock, len(tokens))
		blocks[i] = models.ColumnBlock{
			Index:       i,
			Tokens:      tokens[start:end:end],
			StartOffset: i * perBlock,
		}
	}
	return blocks
}
