package financing

import (
	"time"

	domain "hdb-financing/internal/domain/financing"

	"github.com/shopspring/decimal"
)

type BuyerInput struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	SavingsBalance float64 `json:"savings_balance"`
}

type ListingInput struct {
	SaleMode    string  `json:"sale_mode"`
	FlatType    string  `json:"flat_type"`
	Price       float64 `json:"price"`
	Proximity   float64 `json:"proximity"`
	Town        string  `json:"town"`
	ProjectName string  `json:"project_name"`
	Block       string  `json:"block"`
	UnitNo      string  `json:"unit_no"`
}

type QuoteInput struct {
	Buyers   []BuyerInput   `json:"buyers"`
	Listings []ListingInput `json:"listings"`
	// "government", "private", their aliases "hdb" and "bank", or "both".
	Lenders []string `json:"lenders"`
	// Annual percent, required when a private lender is selected.
	PrivateAnnualRate *float64 `json:"private_annual_rate,omitempty"`
}

type QuoteDTO struct {
	RunID               string              `json:"run_id"`
	CombinedIncome      decimal.Decimal     `json:"combined_income"`
	CombinedSavings     decimal.Decimal     `json:"combined_savings"`
	MonthlyContribution decimal.Decimal     `json:"monthly_contribution"`
	Lenders             []string            `json:"lenders"`
	PrivateAnnualRate   decimal.NullDecimal `json:"private_annual_rate"`
	Records             []domain.Record     `json:"records"`
	Failures            []domain.Failure    `json:"failures"`
	CreatedAt           time.Time           `json:"created_at"`
	Cached              bool                `json:"cached"`
}
