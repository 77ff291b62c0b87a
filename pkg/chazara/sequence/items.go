package sequence

import (
	"fmt"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

// Position addresses an item inside a unit, e.g. a mishnah inside a perek.
// Item 0 means the first item for a start position and the last for an end position.
type Position struct {
	Unit int
	Item int
}

// ItemCounter reports how many items a unit holds.
type ItemCounter func(unit int) (int, bool)

// Items emits "<unit>:<item>" tokens from start to end inclusive.
func Items(start, end Position, count ItemCounter) ([]models.Token, error) {
	if start.Unit <= 0 || end.Unit <= 0 || start.Item < 0 || end.Item < 0 {
		return nil, fmt.Errorf("%w: %d:%d..%d:%d", ErrInvalidBound, start.Unit, start.Item, end.Unit, end.Item)
	}
	if end.Unit < start.Unit {
		return nil, fmt.Errorf("%w: %d..%d", ErrInvertedRange, start.Unit, end.Unit)
	}

	var tokens []models.Token
	for u := start.Unit; u <= end.Unit; u++ {
		n, ok := count(u)
		if !ok || n <= 0 {
			return nil, fmt.Errorf("%w: unit %d has no items", ErrInvalidBound, u)
		}

		first, last := 1, n
		if u == start.Unit && start.Item > 0 {
			first = start.Item
		}
		if u == end.Unit && end.Item > 0 {
			last = end.Item
		}
		if first > n || last > n {
			return nil, fmt.Errorf("%w: unit %d has %d items", ErrInvalidBound, u, n)
		}
		if first > last {
			return nil, fmt.Errorf("%w: %d:%d..%d:%d", ErrInvertedRange, start.Unit, start.Item, end.Unit, end.Item)
		}

		for i := first; i <= last; i++ {
			tokens = append(tokens, models.Token(fmt.Sprintf("%d:%d", u, i)))
		}
	}
	return tokens, nil
}
