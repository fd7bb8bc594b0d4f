package config

import (
	"testing"

	"hdb-financing/internal/domain/financing"
)

func TestLoadSchedule_ExampleMatchesDefaults(t *testing.T) {
	s, err := LoadSchedule("../../configs/schedule.example.yaml")
	if err != nil {
		t.Fatalf("LoadSchedule: %v", err)
	}
	def := financing.DefaultSchedule()

	// decimals compare by value, not representation
	if s.TenureYears != def.TenureYears || !s.ContributionRate.Equal(def.ContributionRate) {
		t.Fatalf("top level differs: %+v", s)
	}
	for _, l := range financing.AllLenders {
		got, want := s.Lenders[l], def.Lenders[l]
		if !got.LTV.Equal(want.LTV) || !got.AnnualRate.Equal(want.AnnualRate) || got.CallerRate != want.CallerRate {
			t.Fatalf("lender %s: got %+v want %+v", l, got, want)
		}
	}
	for _, ft := range financing.AllFlatTypes {
		if !s.Fees.Survey[ft].Equal(def.Fees.Survey[ft]) {
			t.Fatalf("survey %s: got %s want %s", ft, s.Fees.Survey[ft], def.Fees.Survey[ft])
		}
	}
	if len(s.Fees.StampDuty) != len(def.Fees.StampDuty) || len(s.Fees.PurchaseActing) != len(def.Fees.PurchaseActing) {
		t.Fatalf("bracket tables differ")
	}
	for i := range def.Fees.StampDuty {
		if !s.Fees.StampDuty[i].Width.Equal(def.Fees.StampDuty[i].Width) || !s.Fees.StampDuty[i].Rate.Equal(def.Fees.StampDuty[i].Rate) {
			t.Fatalf("stamp duty band %d differs", i)
		}
	}
}
