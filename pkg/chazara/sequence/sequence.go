// Package sequence produces the ordered study unit tokens charted as rows.
package sequence

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

var (
	// ErrInvalidBound indicates a non-positive unit or an unknown sub-unit marker.
	ErrInvalidBound = errors.New("invalid range bound")
	// ErrInvertedRange indicates an end bound that precedes the start bound.
	ErrInvertedRange = errors.New("range end precedes range start")
)

// Bound is one end of a unit range.
type Bound struct {
	Unit int
	// Sub is only consulted for per-sub-unit granularity. An empty start Sub
	// means the first sub-unit, an empty end Sub means the second.
	Sub models.SubUnit
}

// Validate checks that start..end describes a non-empty, ascending range.
func Validate(start, end Bound, g models.Granularity) error {
	if start.Unit <= 0 || end.Unit <= 0 {
		return fmt.Errorf("%w: units must be positive (start=%d end=%d)", ErrInvalidBound, start.Unit, end.Unit)
	}
	if end.Unit < start.Unit {
		return fmt.Errorf("%w: %d..%d", ErrInvertedRange, start.Unit, end.Unit)
	}
	if g != models.PerSubUnit {
		return nil
	}
	for _, s := range []models.SubUnit{start.Sub, end.Sub} {
		if s != models.SubUnitNone && s != models.SubUnitFirst && s != models.SubUnitSecond {
			return fmt.Errorf("%w: sub-unit %q", ErrInvalidBound, s)
		}
	}
	if start.Unit == end.Unit && startSub(start) == models.SubUnitSecond && endSub(end) == models.SubUnitFirst {
		return fmt.Errorf("%w: %d%s..%d%s", ErrInvertedRange, start.Unit, start.Sub, end.Unit, end.Sub)
	}
	return nil
}

// Generate emits the tokens from start to end inclusive.
//
// Per-sub-unit granularity yields "<unit>a", "<unit>b" pairs, skipping the first
// sub-unit of the start unit when the range starts on the second, and the second
// sub-unit of the end unit when the range ends on the first.
//
// Per-whole-unit granularity yields one "<unit>" token for every unit in the range;
// sub-unit markers are ignored.
func Generate(start, end Bound, g models.Granularity) ([]models.Token, error) {
	if err := Validate(start, end, g); err != nil {
		return nil, err
	}

	if g != models.PerSubUnit {
		tokens := make([]models.Token, 0, end.Unit-start.Unit+1)
		for u := start.Unit; u <= end.Unit; u++ {
			tokens = append(tokens, models.Token(strconv.Itoa(u)))
		}
		return tokens, nil
	}

	tokens := make([]models.Token, 0, 2*(end.Unit-start.Unit+1))
	for u := start.Unit; u <= end.Unit; u++ {
		unit := strconv.Itoa(u)
		if u != start.Unit || startSub(start) == models.SubUnitFirst {
			tokens = append(tokens, models.Token(unit+string(models.SubUnitFirst)))
		}
		if u != end.Unit || endSub(end) == models.SubUnitSecond {
			tokens = append(tokens, models.Token(unit+string(models.SubUnitSecond)))
		}
	}
	return tokens, nil
}

func startSub(b Bound) models.SubUnit {
	if b.Sub == models.SubUnitNone {
		return models.SubUnitFirst
	}
	return b.Sub
}

func endSub(b Bound) models.SubUnit {
	if b.Sub == models.SubUnitNone {
		return models.SubUnitSecond
	}
	return b.Sub
}
