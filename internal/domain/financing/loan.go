package financing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal places kept while compounding. Enough to resolve (1+r)^n-1 for any
// nonzero rate PeriodicRate can produce.
const compoundScale = 48

// ComputeDeposit is the non-loan part of price at the lender's LTV.
func ComputeDeposit(price decimal.Decimal, terms LenderTerms) decimal.Decimal {
	return one.Sub(terms.LTV).Mul(price)
}

// ComputeLoan sizes the loan. Savings above the lender's minimum cash deposit
// offset the loan; below it the full LTV is borrowed.
func ComputeLoan(price, savings decimal.Decimal, terms LenderTerms) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price %s", ErrNonPositiveInput, price)
	}
	if savings.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: savings %s", ErrNonPositiveInput, savings)
	}
	if savings.GreaterThan(terms.MinCashDeposit.Mul(price)) {
		loan := terms.MinCashDeposit.Add(terms.LTV).Mul(price).Sub(savings)
		return decimal.Max(loan, decimal.Zero), nil
	}
	return terms.LTV.Mul(price), nil
}

// PeriodicRate converts an annual percentage into a per-period fraction.
// The sign of the annual rate is ignored.
func PeriodicRate(annualPercent decimal.Decimal, periodsPerYear int) decimal.Decimal {
	return annualPercent.Abs().Div(hundred.Mul(decimal.NewFromInt(int64(periodsPerYear))))
}

// ComputeMortgage returns the fixed payment that repays loan over n periods
// at periodic rate r, rounded to cents. A zero rate splits the loan evenly.
func ComputeMortgage(loan, r decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %d periods", ErrDegenerateRate, n)
	}
	if r.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: periodic rate %s", ErrDegenerateRate, r)
	}
	if loan.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: loan %s", ErrNonPositiveInput, loan)
	}
	if r.IsZero() {
		return loan.Div(decimal.NewFromInt(int64(n))).Round(2), nil
	}

	factor := compound(r, n)
	growth := factor.Sub(one)
	if !growth.IsPositive() {
		return loan.Div(decimal.NewFromInt(int64(n))).Round(2), nil
	}
	return loan.Mul(r).Mul(factor).Div(growth).Round(2), nil
}

// compound returns (1+r)^n by repeated squaring.
func compound(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	acc := one
	for e := n; e > 0; e >>= 1 {
		if e&1 == 1 {
			acc = acc.Mul(base).Round(compoundScale)
		}
		base = base.Mul(base).Round(compoundScale)
	}
	return acc
}
