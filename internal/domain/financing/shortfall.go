package financing

import "github.com/shopspring/decimal"

// ComputeDepositShortfall is the cash needed for the deposit and fees. Fees
// are always paid in cash; the lender caps the share of the deposit that
// savings may cover.
func ComputeDepositShortfall(savings, deposit, fees decimal.Decimal, terms LenderTerms) decimal.Decimal {
	share := terms.SavingsDepositShare
	if savings.GreaterThan(share.Mul(deposit)) {
		return one.Sub(share).Mul(deposit).Add(fees)
	}
	return deposit.Add(fees).Sub(savings)
}

func ComputeMortgageShortfall(payment, monthlyContribution decimal.Decimal) decimal.Decimal {
	return decimal.Max(payment.Sub(monthlyContribution), decimal.Zero)
}
