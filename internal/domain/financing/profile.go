package financing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Buyer is one applicant's monthly income and savings balance.
type Buyer struct {
	MonthlyIncome  decimal.Decimal
	SavingsBalance decimal.Decimal
}

// BuyerProfile is the household view used for every listing in a run.
type BuyerProfile struct {
	CombinedIncome      decimal.Decimal
	CombinedSavings     decimal.Decimal
	MonthlyContribution decimal.Decimal
}

// NewBuyerProfile combines the buyers' figures. Each buyer contributes the
// schedule's rate on income up to the contribution ceiling.
func NewBuyerProfile(buyers []Buyer, s Schedule) (BuyerProfile, error) {
	if len(buyers) == 0 {
		return BuyerProfile{}, fmt.Errorf("%w: at least one buyer is required", ErrNonPositiveInput)
	}
	var p BuyerProfile
	capped := decimal.Zero
	for i, b := range buyers {
		if b.MonthlyIncome.IsNegative() {
			return BuyerProfile{}, fmt.Errorf("%w: buyer %d income %s", ErrNonPositiveInput, i+1, b.MonthlyIncome)
		}
		if b.SavingsBalance.IsNegative() {
			return BuyerProfile{}, fmt.Errorf("%w: buyer %d savings %s", ErrNonPositiveInput, i+1, b.SavingsBalance)
		}
		p.CombinedIncome = p.CombinedIncome.Add(b.MonthlyIncome)
		p.CombinedSavings = p.CombinedSavings.Add(b.SavingsBalance)
		capped = capped.Add(decimal.Min(b.MonthlyIncome, s.ContributionCeiling))
	}
	p.MonthlyContribution = s.ContributionRate.Mul(capped)
	return p, nil
}

func (p BuyerProfile) Validate() error {
	if p.CombinedIncome.IsNegative() || p.CombinedSavings.IsNegative() || p.MonthlyContribution.IsNegative() {
		return fmt.Errorf("%w: buyer profile has negative figures", ErrNonPositiveInput)
	}
	return nil
}
