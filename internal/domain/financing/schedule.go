package financing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// GrantPolicy holds the amounts and thresholds of the three housing grants.
type GrantPolicy struct {
	EnhancedBase        decimal.Decimal
	EnhancedIncomeFloor decimal.Decimal
	EnhancedIncomeStep  decimal.Decimal
	EnhancedStepDown    decimal.Decimal

	FamilyIncomeCeiling decimal.Decimal
	// 3-room and 4-room flats
	FamilySmallFlat decimal.Decimal
	// 5-room and executive flats
	FamilyLargeFlat decimal.Decimal

	ProximitySameAddress decimal.Decimal
	ProximityNear        decimal.Decimal
	ProximityNearLimit   decimal.Decimal
}

// FeeSchedule holds the government fee tables. Conveyancing rates are quoted
// per ConveyancingUnit of value.
type FeeSchedule struct {
	TaxRate          decimal.Decimal
	StampDuty        Brackets
	PurchaseActing   map[SaleMode]Brackets
	MortgageActing   Brackets
	ConveyancingUnit decimal.Decimal
	Survey           map[FlatType]decimal.Decimal
	MortgageDeedRate decimal.Decimal
	MortgageDeedCap  decimal.Decimal
	MortgageEscrow   decimal.Decimal
	LeaseEscrow      decimal.Decimal
	CaveatFee        decimal.Decimal
	TitleFee         decimal.Decimal
}

// LenderTerms describes one lender's loan-to-value policy.
type LenderTerms struct {
	LTV decimal.Decimal
	// Fraction of price the buyer must hold before savings start offsetting the loan.
	MinCashDeposit decimal.Decimal
	// Fraction of the deposit that may be paid from savings.
	SavingsDepositShare decimal.Decimal
	// Annual rate in percent. Ignored when CallerRate is set.
	AnnualRate decimal.Decimal
	CallerRate bool
}

type namedAmount struct {
	name string
	v    decimal.Decimal
}

// Schedule is the full set of policy constants an Engine computes with.
type Schedule struct {
	Grants              GrantPolicy
	Fees                FeeSchedule
	Lenders             map[Lender]LenderTerms
	TenureYears         int
	PeriodsPerYear      int
	ContributionRate    decimal.Decimal
	ContributionCeiling decimal.Decimal
}

// NumPeriods is the total number of mortgage payments over the tenure.
func (s Schedule) NumPeriods() int { return s.TenureYears * s.PeriodsPerYear }

func DefaultSchedule() Schedule {
	conveyancingWidths := func(rates ...string) Brackets {
		return Brackets{
			{Width: dec("30000"), Rate: dec(rates[0])},
			{Width: dec("30000"), Rate: dec(rates[1])},
			{Rate: dec(rates[2])},
		}
	}
	return Schedule{
		Grants: GrantPolicy{
			EnhancedBase:         dec("80000"),
			EnhancedIncomeFloor:  dec("1500"),
			EnhancedIncomeStep:   dec("500"),
			EnhancedStepDown:     dec("5000"),
			FamilyIncomeCeiling:  dec("14000"),
			FamilySmallFlat:      dec("50000"),
			FamilyLargeFlat:      dec("40000"),
			ProximitySameAddress: dec("30000"),
			ProximityNear:        dec("20000"),
			ProximityNearLimit:   dec("4"),
		},
		Fees: FeeSchedule{
			TaxRate: dec("0.07"),
			StampDuty: Brackets{
				{Width: dec("180000"), Rate: dec("0.01")},
				{Width: dec("180000"), Rate: dec("0.02")},
				{Width: dec("640000"), Rate: dec("0.03")},
				{Rate: dec("0.04")},
			},
			PurchaseActing: map[SaleMode]Brackets{
				SaleModeNewBuild: conveyancingWidths("0.9", "0.72", "0.6"),
				SaleModeResale:   conveyancingWidths("1.35", "1.08", "0.9"),
			},
			MortgageActing:   conveyancingWidths("2.03", "1.61", "1.35"),
			ConveyancingUnit: dec("1000"),
			Survey: map[FlatType]decimal.Decimal{
				FlatType2Room:     dec("150"),
				FlatType3Room:     dec("212.5"),
				FlatType4Room:     dec("275"),
				FlatType5Room:     dec("325"),
				FlatTypeExecutive: dec("375"),
			},
			MortgageDeedRate: dec("0.004"),
			MortgageDeedCap:  dec("500"),
			MortgageEscrow:   dec("38.3"),
			LeaseEscrow:      dec("38.3"),
			CaveatFee:        dec("64.45"),
			TitleFee:         dec("32"),
		},
		Lenders: map[Lender]LenderTerms{
			LenderGovernment: {
				LTV:                 dec("0.9"),
				MinCashDeposit:      dec("0.1"),
				SavingsDepositShare: dec("1"),
				AnnualRate:          dec("2.6"),
			},
			LenderPrivate: {
				LTV:                 dec("0.75"),
				MinCashDeposit:      dec("0.2"),
				SavingsDepositShare: dec("0.8"),
				CallerRate:          true,
			},
		},
		TenureYears:         25,
		PeriodsPerYear:      12,
		ContributionRate:    dec("0.23"),
		ContributionCeiling: dec("6000"),
	}
}

// Validate checks that every enum value has an entry and that all fractions
// and amounts are in range.
func (s Schedule) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSchedule}, args...)...)
	}
	if s.TenureYears <= 0 || s.PeriodsPerYear <= 0 {
		return bad("tenure %d years x %d periods", s.TenureYears, s.PeriodsPerYear)
	}
	if s.ContributionRate.IsNegative() || s.ContributionCeiling.IsNegative() {
		return bad("negative contribution rate or ceiling")
	}
	g := s.Grants
	if !g.EnhancedIncomeStep.IsPositive() {
		return bad("enhanced grant income step must be positive")
	}
	for _, a := range []namedAmount{
		{"enhanced base", g.EnhancedBase},
		{"enhanced income floor", g.EnhancedIncomeFloor},
		{"enhanced step down", g.EnhancedStepDown},
		{"family income ceiling", g.FamilyIncomeCeiling},
		{"family small flat", g.FamilySmallFlat},
		{"family large flat", g.FamilyLargeFlat},
		{"proximity same address", g.ProximitySameAddress},
		{"proximity near", g.ProximityNear},
		{"proximity near limit", g.ProximityNearLimit},
	} {
		if a.v.IsNegative() {
			return bad("negative grant %s", a.name)
		}
	}
	for _, l := range AllLenders {
		t, ok := s.Lenders[l]
		if !ok {
			return bad("no terms for lender %s", l)
		}
		if !t.LTV.IsPositive() || t.LTV.GreaterThan(one) {
			return bad("lender %s ltv %s out of (0, 1]", l, t.LTV)
		}
		if t.MinCashDeposit.IsNegative() {
			return bad("lender %s negative minimum cash deposit", l)
		}
		if t.SavingsDepositShare.IsNegative() || t.SavingsDepositShare.GreaterThan(one) {
			return bad("lender %s savings share %s out of [0, 1]", l, t.SavingsDepositShare)
		}
		if t.AnnualRate.IsNegative() {
			return bad("lender %s negative annual rate", l)
		}
	}
	f := s.Fees
	for _, a := range []namedAmount{
		{"tax rate", f.TaxRate},
		{"mortgage deed rate", f.MortgageDeedRate},
		{"mortgage deed cap", f.MortgageDeedCap},
		{"mortgage escrow", f.MortgageEscrow},
		{"lease escrow", f.LeaseEscrow},
		{"caveat fee", f.CaveatFee},
		{"title fee", f.TitleFee},
	} {
		if a.v.IsNegative() {
			return bad("negative %s", a.name)
		}
	}
	for ft, v := range f.Survey {
		if v.IsNegative() {
			return bad("negative survey fee for %s", ft)
		}
	}
	if !f.ConveyancingUnit.IsPositive() {
		return bad("conveyancing unit must be positive")
	}
	if err := f.StampDuty.validate(); err != nil {
		return bad("stamp duty: %v", err)
	}
	if err := f.MortgageActing.validate(); err != nil {
		return bad("mortgage acting: %v", err)
	}
	for _, m := range []SaleMode{SaleModeNewBuild, SaleModeResale} {
		b, ok := f.PurchaseActing[m]
		if !ok {
			return bad("no purchase acting brackets for %s", m)
		}
		if err := b.validate(); err != nil {
			return bad("purchase acting %s: %v", m, err)
		}
	}
	return nil
}

func (s Schedule) clone() Schedule {
	out := s
	out.Fees.StampDuty = append(Brackets(nil), s.Fees.StampDuty...)
	out.Fees.MortgageActing = append(Brackets(nil), s.Fees.MortgageActing...)
	out.Fees.PurchaseActing = make(map[SaleMode]Brackets, len(s.Fees.PurchaseActing))
	for k, v := range s.Fees.PurchaseActing {
		out.Fees.PurchaseActing[k] = append(Brackets(nil), v...)
	}
	out.Fees.Survey = make(map[FlatType]decimal.Decimal, len(s.Fees.Survey))
	for k, v := range s.Fees.Survey {
		out.Fees.Survey[k] = v
	}
	out.Lenders = make(map[Lender]LenderTerms, len(s.Lenders))
	for k, v := range s.Lenders {
		out.Lenders[k] = v
	}
	return out
}
