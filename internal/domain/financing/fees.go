package financing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeBreakdown itemizes the fees payable on one purchase. Survey holds the
// survey fee only when it is payable for the sale mode; Other excludes it.
type FeeBreakdown struct {
	StampDuty    decimal.Decimal
	Conveyancing decimal.Decimal
	Survey       decimal.Decimal
	Other        decimal.Decimal
}

func (b FeeBreakdown) Total() decimal.Decimal {
	return b.StampDuty.Add(b.Conveyancing).Add(b.Survey).Add(b.Other)
}

func (f FeeSchedule) ComputeStampDuty(price decimal.Decimal) decimal.Decimal {
	return f.StampDuty.Apply(price)
}

// ComputeConveyancingFee charges the purchase-acting schedule on price and,
// for resale flats, the mortgage-acting schedule on loan. The sum is rounded
// up to a whole unit before tax.
func (f FeeSchedule) ComputeConveyancingFee(mode SaleMode, price, loan, taxRate decimal.Decimal) (decimal.Decimal, error) {
	purchase, ok := f.PurchaseActing[mode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: sale mode %q", ErrInvalidEnumValue, mode)
	}
	fee := purchase.Apply(price).Div(f.ConveyancingUnit)
	if mode == SaleModeResale {
		fee = fee.Add(f.MortgageActing.Apply(loan).Div(f.ConveyancingUnit))
	}
	return fee.Ceil().Mul(one.Add(taxRate)), nil
}

// ComputeSurveyFee returns zero for flat types without a survey rate.
func (f FeeSchedule) ComputeSurveyFee(ft FlatType, taxRate decimal.Decimal) decimal.Decimal {
	fee, ok := f.Survey[ft]
	if !ok {
		return decimal.Zero
	}
	return fee.Mul(one.Add(taxRate))
}

// ComputeOtherFees returns the deed, escrow and registration fees. Sale modes
// outside the two known ones yield zero.
func (f FeeSchedule) ComputeOtherFees(mode SaleMode, loan, surveyFee decimal.Decimal) decimal.Decimal {
	base := decimal.Min(loan.Mul(f.MortgageDeedRate), f.MortgageDeedCap).
		Add(f.MortgageEscrow).
		Add(f.LeaseEscrow)
	switch mode {
	case SaleModeNewBuild:
		return base.Add(surveyFee)
	case SaleModeResale:
		return base.Add(f.CaveatFee.Mul(two)).Add(f.TitleFee)
	}
	return decimal.Zero
}

// Itemize computes every fee for one listing and loan.
func (f FeeSchedule) Itemize(mode SaleMode, ft FlatType, price, loan decimal.Decimal) (FeeBreakdown, error) {
	conveyancing, err := f.ComputeConveyancingFee(mode, price, loan, f.TaxRate)
	if err != nil {
		return FeeBreakdown{}, err
	}
	survey := f.ComputeSurveyFee(ft, f.TaxRate)
	other := f.ComputeOtherFees(mode, loan, survey)

	payableSurvey := decimal.Zero
	if mode == SaleModeNewBuild {
		payableSurvey = survey
	}
	return FeeBreakdown{
		StampDuty:    f.ComputeStampDuty(price),
		Conveyancing: conveyancing,
		Survey:       payableSurvey,
		Other:        other.Sub(payableSurvey),
	}, nil
}
