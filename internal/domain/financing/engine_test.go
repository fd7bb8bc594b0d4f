package financing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultSchedule())
	require.NoError(t, err)
	return e
}

func scenarioListings() []FlatListing {
	return []FlatListing{
		{SaleMode: SaleModeResale, FlatType: FlatType4Room, Price: dec("400000"), Proximity: dec("0"), Town: "Tampines", Block: "123A"},
		{SaleMode: SaleModeNewBuild, FlatType: FlatType4Room, Price: dec("300000"), Proximity: dec("0")},
		{SaleMode: SaleModeResale, FlatType: FlatType3Room, Price: dec("0"), Proximity: dec("1")},
	}
}

func scenarioProfile(t *testing.T, e *Engine) BuyerProfile {
	t.Helper()
	p, err := e.Profile([]Buyer{{MonthlyIncome: dec("8000"), SavingsBalance: dec("60000")}})
	require.NoError(t, err)
	return p
}

func bothLenders(rate string) LenderSelection {
	return LenderSelection{
		Lenders:           []Lender{LenderGovernment, LenderPrivate},
		PrivateAnnualRate: decimal.NewNullDecimal(dec(rate)),
	}
}

func TestEngineRun_EndToEnd(t *testing.T) {
	e := newTestEngine(t)
	b, err := e.Run(scenarioProfile(t, e), scenarioListings(), bothLenders("3.5"))
	require.NoError(t, err)
	require.Len(t, b.Records, 4)
	require.Len(t, b.Failures, 2)

	gov := b.Records[0]
	assert.Equal(t, LenderGovernment, gov.Lender)
	assert.Equal(t, 0, gov.ListingIndex)
	assert.Equal(t, "Tampines", gov.Town)
	assertDec(t, "0.9", gov.LTV)
	assertDec(t, "95000", gov.Grants)
	assertDec(t, "155000", gov.EnrichedSavings)
	assertDec(t, "40000", gov.Deposit)
	assertDec(t, "245000", gov.Loan)
	assertDec(t, "115000", gov.LoanOffset)
	assertDec(t, "1111.49", gov.Mortgage)
	assertDec(t, "6600", gov.StampDuty)
	assertDec(t, "789.66", gov.ConveyancingFee)
	assertDec(t, "0", gov.SurveyFee)
	assertDec(t, "737.5", gov.OtherFees)
	assertDec(t, "8127.16", gov.TotalFees)
	assertDec(t, "8127.16", gov.DepositInCash)
	assertDec(t, "0", gov.MortgageInCash)

	bto := b.Records[1]
	assert.Equal(t, 1, bto.ListingIndex)
	assertDec(t, "15000", bto.Grants)
	assertDec(t, "225000", bto.Loan)
	assertDec(t, "1020.76", bto.Mortgage)
	assertDec(t, "5277.36", bto.TotalFees)

	bank := b.Records[2]
	assert.Equal(t, LenderPrivate, bank.Lender)
	assert.Equal(t, 0, bank.ListingIndex)
	assertDec(t, "100000", bank.Deposit)
	assertDec(t, "225000", bank.Loan)
	assertDec(t, "1126.4", bank.Mortgage)
	assertDec(t, "760.77", bank.ConveyancingFee)
	assertDec(t, "8098.27", bank.TotalFees)
	assertDec(t, "28098.27", bank.DepositInCash)

	assert.Equal(t, LenderPrivate, b.Records[3].Lender)
	assertDec(t, "210000", b.Records[3].Loan)

	for _, f := range b.Failures {
		assert.Equal(t, 2, f.ListingIndex)
		assert.ErrorIs(t, &f, ErrNonPositiveInput)
	}
	assert.Equal(t, LenderGovernment, b.Failures[0].Lender)
	assert.Equal(t, LenderPrivate, b.Failures[1].Lender)
}

func TestEngineRun_RecordInvariants(t *testing.T) {
	e := newTestEngine(t)
	p, err := e.Profile([]Buyer{
		{MonthlyIncome: dec("3000"), SavingsBalance: dec("12000")},
		{MonthlyIncome: dec("2500"), SavingsBalance: dec("4000")},
	})
	require.NoError(t, err)

	var listings []FlatListing
	for _, mode := range []SaleMode{SaleModeNewBuild, SaleModeResale} {
		for _, ft := range AllFlatTypes {
			for _, price := range []string{"90000", "250000", "520000", "1200000"} {
				listings = append(listings, FlatListing{SaleMode: mode, FlatType: ft, Price: dec(price), Proximity: dec("2.5")})
			}
		}
	}
	b, err := e.Run(p, listings, bothLenders("4.1"))
	require.NoError(t, err)
	require.Empty(t, b.Failures)
	require.Len(t, b.Records, 2*len(listings))

	for _, r := range b.Records {
		items := r.StampDuty.Add(r.ConveyancingFee).Add(r.SurveyFee).Add(r.OtherFees)
		assert.True(t, r.TotalFees.Equal(items), "total fees %s != items %s", r.TotalFees, items)
		assert.True(t, r.Deposit.Add(r.Loan).Add(r.LoanOffset).Equal(r.Price))
		if r.LoanOffset.IsZero() {
			assert.True(t, r.Deposit.Add(r.Loan).Equal(r.Price))
		}
		for name, v := range map[string]decimal.Decimal{
			"grants": r.Grants, "deposit": r.Deposit, "loan": r.Loan, "offset": r.LoanOffset,
			"mortgage": r.Mortgage, "stamp": r.StampDuty, "conveyancing": r.ConveyancingFee,
			"survey": r.SurveyFee, "other": r.OtherFees, "deposit cash": r.DepositInCash,
			"mortgage cash": r.MortgageInCash,
		} {
			assert.False(t, v.IsNegative(), "%s negative: %s", name, v)
		}
	}
}

func TestEngineRun_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	p := scenarioProfile(t, e)
	first, err := e.Run(p, scenarioListings(), bothLenders("3.5"))
	require.NoError(t, err)
	second, err := e.Run(p, scenarioListings(), bothLenders("3.5"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngineRun_SelectionErrors(t *testing.T) {
	e := newTestEngine(t)
	p := scenarioProfile(t, e)

	_, err := e.Run(p, scenarioListings(), LenderSelection{Lenders: []Lender{LenderPrivate}})
	assert.ErrorIs(t, err, ErrMissingRate)

	_, err = e.Run(p, scenarioListings(), LenderSelection{Lenders: []Lender{"credit-union"}})
	assert.ErrorIs(t, err, ErrUnknownLender)

	_, err = e.Run(p, scenarioListings(), LenderSelection{})
	assert.ErrorIs(t, err, ErrUnknownLender)

	_, err = e.Run(BuyerProfile{CombinedSavings: dec("-1")}, scenarioListings(), bothLenders("3"))
	assert.ErrorIs(t, err, ErrNonPositiveInput)
}

func TestEngineRun_ZeroPrivateRate(t *testing.T) {
	e := newTestEngine(t)
	b, err := e.Run(scenarioProfile(t, e), scenarioListings()[:1], LenderSelection{
		Lenders:           []Lender{LenderPrivate},
		PrivateAnnualRate: decimal.NewNullDecimal(decimal.Zero),
	})
	require.NoError(t, err)
	require.Len(t, b.Records, 1)
	assertDec(t, "750", b.Records[0].Mortgage) // 225000 / 300
}

func TestEngineRun_InvalidEnumReported(t *testing.T) {
	e := newTestEngine(t)
	listings := []FlatListing{{SaleMode: "auction", FlatType: FlatType4Room, Price: dec("1"), Proximity: dec("0")}}
	b, err := e.Run(scenarioProfile(t, e), listings, LenderSelection{Lenders: []Lender{LenderGovernment}})
	require.NoError(t, err)
	require.Empty(t, b.Records)
	require.Len(t, b.Failures, 1)
	assert.True(t, errors.Is(&b.Failures[0], ErrInvalidEnumValue))
	assert.Contains(t, b.Failures[0].Failure().Reason, "auction")
}

func TestEngineRun_TinyPrivateRate(t *testing.T) {
	e := newTestEngine(t)
	b, err := e.Run(scenarioProfile(t, e), scenarioListings()[:1], LenderSelection{
		Lenders:           []Lender{LenderPrivate},
		PrivateAnnualRate: decimal.NewNullDecimal(decimal.NewFromFloat(1e-13)),
	})
	require.NoError(t, err)
	require.Len(t, b.Records, 1)
	assert.Empty(t, b.Failures)
	assertDec(t, "750", b.Records[0].Mortgage)
}

func TestNewEngine_ScheduleDigest(t *testing.T) {
	a := newTestEngine(t)
	b := newTestEngine(t)
	assert.Len(t, a.ScheduleDigest(), 64)
	assert.Equal(t, a.ScheduleDigest(), b.ScheduleDigest())

	s := DefaultSchedule()
	s.Fees.TitleFee = dec("40")
	c, err := NewEngine(s)
	require.NoError(t, err)
	assert.NotEqual(t, a.ScheduleDigest(), c.ScheduleDigest())
}
