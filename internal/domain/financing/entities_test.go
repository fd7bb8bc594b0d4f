package financing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordRounded(t *testing.T) {
	r := Record{
		Price:           dec("400000.004"),
		Proximity:       dec("1.23456"),
		LTV:             dec("0.9"),
		PeriodicRate:    dec("2.6").Div(dec("1200")),
		ConveyancingFee: dec("1461.12345678912345"),
		Mortgage:        dec("1111.494"),
	}
	got := r.Rounded()

	assertDec(t, "400000", got.Price)
	assertDec(t, "1.235", got.Proximity)
	assertDec(t, "0.9", got.LTV)
	assert.True(t, got.PeriodicRate.Equal(r.PeriodicRate), "16 places fit the column: %s", got.PeriodicRate)
	assertDec(t, "1461.1234567891", got.ConveyancingFee)
	assertDec(t, "1111.49", got.Mortgage)
	assertDec(t, "1461.12345678912345", r.ConveyancingFee, "receiver unchanged")
}

func TestRunRounded(t *testing.T) {
	run := Run{
		MonthlyContribution: dec("1840.123456789012"),
		PrivateAnnualRate:   decimal.NewNullDecimal(dec("0.0000000000000000000001")),
	}
	got := run.Rounded()
	assertDec(t, "1840.123456789", got.MonthlyContribution)
	assert.True(t, got.PrivateAnnualRate.Valid)
	assert.True(t, got.PrivateAnnualRate.Decimal.IsZero())

	assert.False(t, Run{}.Rounded().PrivateAnnualRate.Valid)
}
