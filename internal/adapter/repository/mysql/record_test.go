package mysql

import (
	"context"
	"testing"

	"hdb-financing/internal/domain/financing"
)

func TestRecordRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	runs := NewRunRepository(db)
	repo := NewRecordRepository(db)

	run := makeRun()
	if err := runs.Create(ctx, run); err != nil {
		t.Fatalf("create run: %v", err)
	}

	recs := []financing.Record{
		makeRecord(0, financing.LenderGovernment, "245000"),
		makeRecord(1, financing.LenderGovernment, "225000"),
		makeRecord(0, financing.LenderPrivate, "225000"),
	}
	if err := repo.CreateRecords(ctx, run.ID, recs); err != nil {
		t.Fatalf("CreateRecords: %v", err)
	}
	fails := []financing.Failure{{ListingIndex: 1, Lender: financing.LenderPrivate, Reason: "boom"}}
	if err := repo.CreateFailures(ctx, run.ID, fails); err != nil {
		t.Fatalf("CreateFailures: %v", err)
	}

	got, err := repo.ListRecords(ctx, run.ID)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("records = %d, want 3", len(got))
	}
	if got[0].Lender != financing.LenderGovernment || got[2].Lender != financing.LenderPrivate {
		t.Fatalf("unexpected order: %s, %s", got[0].Lender, got[2].Lender)
	}
	if got[1].ListingIndex != 1 || got[1].RunID != run.ID {
		t.Fatalf("unexpected record: %+v", got[1])
	}
	if got[0].Loan.String() != "245000" {
		t.Fatalf("loan = %s", got[0].Loan)
	}

	gotFails, err := repo.ListFailures(ctx, run.ID)
	if err != nil {
		t.Fatalf("ListFailures: %v", err)
	}
	if len(gotFails) != 1 || gotFails[0].Reason != "boom" {
		t.Fatalf("unexpected failures: %+v", gotFails)
	}
}

func TestRecordRepository_EmptyInputsAreNoops(t *testing.T) {
	repo := NewRecordRepository(openTestDB(t))
	ctx := context.Background()
	if err := repo.CreateRecords(ctx, 1, nil); err != nil {
		t.Fatalf("CreateRecords(nil): %v", err)
	}
	if err := repo.CreateFailures(ctx, 1, nil); err != nil {
		t.Fatalf("CreateFailures(nil): %v", err)
	}
	got, err := repo.ListRecords(ctx, 42)
	if err != nil || len(got) != 0 {
		t.Fatalf("ListRecords unknown run = %v, %v", got, err)
	}
}
