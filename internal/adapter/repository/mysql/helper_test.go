package mysql

import (
	"testing"

	"hdb-financing/internal/domain/financing"
	"hdb-financing/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB pinned to one connection so every
// query sees the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&financing.Run{}, &financing.Record{}, &financing.Failure{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeRun() *financing.Run {
	return &financing.Run{
		RunID:               id.NewID32(),
		Fingerprint:         "f00d",
		CombinedIncome:      decimal.RequireFromString("8000"),
		CombinedSavings:     decimal.RequireFromString("60000"),
		MonthlyContribution: decimal.RequireFromString("1380"),
		Lenders:             "government,private",
		PrivateAnnualRate:   decimal.NewNullDecimal(decimal.RequireFromString("3.5")),
		ListingCount:        2,
	}
}

func makeRecord(listing int, lender financing.Lender, loan string) financing.Record {
	return financing.Record{
		ListingIndex: listing,
		Town:         "Bishan",
		SaleMode:     financing.SaleModeResale,
		FlatType:     financing.FlatType4Room,
		Price:        decimal.RequireFromString("400000"),
		Proximity:    decimal.Zero,
		Lender:       lender,
		LTV:          decimal.RequireFromString("0.9"),
		Loan:         decimal.RequireFromString(loan),
		Mortgage:     decimal.RequireFromString("1111.49"),
		TotalFees:    decimal.RequireFromString("8127.16"),
	}
}
