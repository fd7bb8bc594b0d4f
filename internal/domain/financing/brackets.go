package financing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one band of a marginal-rate schedule. A zero Width marks the
// open-ended top band.
type Bracket struct {
	Width decimal.Decimal
	Rate  decimal.Decimal
}

type Brackets []Bracket

// Apply charges each bracket's rate on the part of amount that falls inside
// it, walking the brackets in order until amount is used up.
func (b Brackets) Apply(amount decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	remaining := amount
	for _, br := range b {
		if !remaining.IsPositive() {
			break
		}
		slice := remaining
		if br.Width.IsPositive() {
			slice = decimal.Min(br.Width, remaining)
		}
		total = total.Add(slice.Mul(br.Rate))
		remaining = remaining.Sub(slice)
	}
	return total
}

func (b Brackets) validate() error {
	if len(b) == 0 {
		return errors.New("no brackets")
	}
	for i, br := range b {
		if br.Rate.IsNegative() {
			return fmt.Errorf("bracket %d: negative rate", i)
		}
		last := i == len(b)-1
		if !last && !br.Width.IsPositive() {
			return fmt.Errorf("bracket %d: only the last bracket may be open", i)
		}
		if last && !br.Width.IsZero() {
			return fmt.Errorf("bracket %d: last bracket must be open", i)
		}
	}
	return nil
}
