package financing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FlatListing is one candidate flat. The labels are carried through to the
// records untouched.
type FlatListing struct {
	SaleMode  SaleMode
	FlatType  FlatType
	Price     decimal.Decimal
	Proximity decimal.Decimal

	Town        string
	ProjectName string
	Block       string
	UnitNo      string
}

func (l FlatListing) Validate() error {
	if !l.SaleMode.Valid() {
		return fmt.Errorf("%w: sale mode %q", ErrInvalidEnumValue, l.SaleMode)
	}
	if !l.FlatType.Valid() {
		return fmt.Errorf("%w: flat type %q", ErrInvalidEnumValue, l.FlatType)
	}
	if !l.Price.IsPositive() {
		return fmt.Errorf("%w: price %s", ErrNonPositiveInput, l.Price)
	}
	if l.Proximity.IsNegative() {
		return fmt.Errorf("%w: proximity %s", ErrNonPositiveInput, l.Proximity)
	}
	return nil
}
