package financing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Decimal places stored for each kind of amount. Rounded() brings a value to
// its column scale so a stored run reads back exactly as it was returned.
const (
	centScale      = 2
	proximityScale = 3
	moneyScale     = 10
	rateScale      = 20
)

// Record is the financing breakdown of one listing with one lender.
type Record struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	RunID        uint64 `gorm:"column:run_id;not null;index:idx_financing_records_run" json:"-"`
	ListingIndex int    `gorm:"column:listing_index;not null" json:"listing_index"`

	Town        string          `gorm:"size:64" json:"town,omitempty"`
	ProjectName string          `gorm:"size:128" json:"project_name,omitempty"`
	Block       string          `gorm:"size:16" json:"block,omitempty"`
	UnitNo      string          `gorm:"size:16" json:"unit_no,omitempty"`
	SaleMode    SaleMode        `gorm:"size:16;not null" json:"sale_mode"`
	FlatType    FlatType        `gorm:"size:16;not null" json:"flat_type"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2)" json:"price"`
	Proximity   decimal.Decimal `gorm:"type:decimal(12,3)" json:"proximity"`

	Lender       Lender          `gorm:"size:16;not null" json:"lender"`
	LTV          decimal.Decimal `gorm:"column:ltv;type:decimal(22,20)" json:"ltv"`
	PeriodicRate decimal.Decimal `gorm:"type:decimal(22,20)" json:"periodic_rate"`

	Grants          decimal.Decimal `gorm:"type:decimal(28,10)" json:"grants"`
	EnrichedSavings decimal.Decimal `gorm:"type:decimal(28,10)" json:"enriched_savings"`
	Deposit         decimal.Decimal `gorm:"type:decimal(28,10)" json:"deposit"`
	Loan            decimal.Decimal `gorm:"type:decimal(28,10)" json:"loan"`
	LoanOffset      decimal.Decimal `gorm:"type:decimal(28,10)" json:"loan_offset"`
	Mortgage        decimal.Decimal `gorm:"type:decimal(18,2)" json:"mortgage"`

	StampDuty       decimal.Decimal `gorm:"type:decimal(28,10)" json:"stamp_duty"`
	ConveyancingFee decimal.Decimal `gorm:"type:decimal(28,10)" json:"conveyancing_fee"`
	SurveyFee       decimal.Decimal `gorm:"type:decimal(28,10)" json:"survey_fee"`
	OtherFees       decimal.Decimal `gorm:"type:decimal(28,10)" json:"other_fees"`
	TotalFees       decimal.Decimal `gorm:"type:decimal(28,10)" json:"total_fees"`

	DepositInCash  decimal.Decimal `gorm:"type:decimal(28,10)" json:"deposit_in_cash"`
	MortgageInCash decimal.Decimal `gorm:"type:decimal(18,2)" json:"mortgage_in_cash"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Record) TableName() string { return "financing_records" }

func (r Record) Rounded() Record {
	r.Price = r.Price.Round(centScale)
	r.Proximity = r.Proximity.Round(proximityScale)
	r.LTV = r.LTV.Round(rateScale)
	r.PeriodicRate = r.PeriodicRate.Round(rateScale)
	for _, d := range []*decimal.Decimal{
		&r.Grants, &r.EnrichedSavings, &r.Deposit, &r.Loan, &r.LoanOffset,
		&r.StampDuty, &r.ConveyancingFee, &r.SurveyFee, &r.OtherFees, &r.TotalFees,
		&r.DepositInCash,
	} {
		*d = d.Round(moneyScale)
	}
	r.Mortgage = r.Mortgage.Round(centScale)
	r.MortgageInCash = r.MortgageInCash.Round(centScale)
	return r
}

// Failure is a listing×lender pair that could not be computed.
type Failure struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	RunID        uint64    `gorm:"column:run_id;not null;index:idx_financing_failures_run" json:"-"`
	ListingIndex int       `gorm:"column:listing_index;not null" json:"listing_index"`
	Lender       Lender    `gorm:"size:16;not null" json:"lender"`
	Reason       string    `gorm:"type:text" json:"reason"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Failure) TableName() string { return "financing_failures" }

// Run is one persisted batch computation.
type Run struct {
	ID                  uint64              `gorm:"primaryKey;column:id" json:"-"`
	RunID               string              `gorm:"size:32;uniqueIndex:ux_financing_runs_run_id" json:"run_id"`
	Fingerprint         string              `gorm:"size:64;index:idx_financing_runs_fingerprint" json:"fingerprint"`
	CombinedIncome      decimal.Decimal     `gorm:"type:decimal(28,10)" json:"combined_income"`
	CombinedSavings     decimal.Decimal     `gorm:"type:decimal(28,10)" json:"combined_savings"`
	MonthlyContribution decimal.Decimal     `gorm:"type:decimal(28,10)" json:"monthly_contribution"`
	Lenders             string              `gorm:"size:64" json:"lenders"`
	PrivateAnnualRate   decimal.NullDecimal `gorm:"type:decimal(23,20)" json:"private_annual_rate"`
	ListingCount        int                 `json:"listing_count"`
	CreatedAt           time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (Run) TableName() string { return "financing_runs" }

func (r Run) Rounded() Run {
	r.CombinedIncome = r.CombinedIncome.Round(moneyScale)
	r.CombinedSavings = r.CombinedSavings.Round(moneyScale)
	r.MonthlyContribution = r.MonthlyContribution.Round(moneyScale)
	if r.PrivateAnnualRate.Valid {
		r.PrivateAnnualRate.Decimal = r.PrivateAnnualRate.Decimal.Round(rateScale)
	}
	return r
}
