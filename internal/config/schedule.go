package config

import (
	"fmt"

	"hdb-financing/internal/domain/financing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// The schedule file only needs the keys it changes; everything else keeps
// its default. Amounts may be written as numbers or strings.
type scheduleFile struct {
	TenureYears         int                   `mapstructure:"tenure_years"`
	PeriodsPerYear      int                   `mapstructure:"periods_per_year"`
	ContributionRate    string                `mapstructure:"contribution_rate"`
	ContributionCeiling string                `mapstructure:"contribution_ceiling"`
	Grants              map[string]string     `mapstructure:"grants"`
	Fees                feesFile              `mapstructure:"fees"`
	Lenders             map[string]lenderFile `mapstructure:"lenders"`
}

type bracketFile struct {
	Width string `mapstructure:"width"`
	Rate  string `mapstructure:"rate"`
}

type feesFile struct {
	StampDuty      []bracketFile            `mapstructure:"stamp_duty"`
	PurchaseActing map[string][]bracketFile `mapstructure:"purchase_acting"`
	MortgageActing []bracketFile            `mapstructure:"mortgage_acting"`
	Survey         map[string]string        `mapstructure:"survey"`
	Amounts        map[string]any           `mapstructure:",remain"`
}

type lenderFile struct {
	LTV                 string `mapstructure:"ltv"`
	MinCashDeposit      string `mapstructure:"min_cash_deposit"`
	SavingsDepositShare string `mapstructure:"savings_deposit_share"`
	AnnualRate          string `mapstructure:"annual_rate"`
	CallerRate          *bool  `mapstructure:"caller_rate"`
}

// LoadSchedule reads a YAML (or any viper-supported) schedule file on top of
// financing.DefaultSchedule and validates the result.
func LoadSchedule(path string) (financing.Schedule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return financing.Schedule{}, fmt.Errorf("read schedule %s: %w", path, err)
	}
	var f scheduleFile
	if err := v.Unmarshal(&f); err != nil {
		return financing.Schedule{}, fmt.Errorf("decode schedule %s: %w", path, err)
	}

	s := financing.DefaultSchedule()
	if err := f.apply(&s); err != nil {
		return financing.Schedule{}, fmt.Errorf("%w: %s: %v", financing.ErrInvalidSchedule, path, err)
	}
	if err := s.Validate(); err != nil {
		return financing.Schedule{}, err
	}
	return s, nil
}

func setDec(dst *decimal.Decimal, raw, name string) error {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, raw)
	}
	*dst = d
	return nil
}

func setDecs(fields map[string]*decimal.Decimal, raw map[string]string, section string) error {
	for k, val := range raw {
		dst, ok := fields[k]
		if !ok {
			return fmt.Errorf("%s: unknown key %q", section, k)
		}
		if err := setDec(dst, val, section+"."+k); err != nil {
			return err
		}
	}
	return nil
}

func toBrackets(in []bracketFile, name string) (financing.Brackets, error) {
	out := make(financing.Brackets, len(in))
	for i, b := range in {
		if err := setDec(&out[i].Width, b.Width, fmt.Sprintf("%s[%d].width", name, i)); err != nil {
			return nil, err
		}
		if err := setDec(&out[i].Rate, b.Rate, fmt.Sprintf("%s[%d].rate", name, i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f scheduleFile) apply(s *financing.Schedule) error {
	if f.TenureYears != 0 {
		s.TenureYears = f.TenureYears
	}
	if f.PeriodsPerYear != 0 {
		s.PeriodsPerYear = f.PeriodsPerYear
	}
	if err := setDec(&s.ContributionRate, f.ContributionRate, "contribution_rate"); err != nil {
		return err
	}
	if err := setDec(&s.ContributionCeiling, f.ContributionCeiling, "contribution_ceiling"); err != nil {
		return err
	}

	g := &s.Grants
	if err := setDecs(map[string]*decimal.Decimal{
		"enhanced_base":          &g.EnhancedBase,
		"enhanced_income_floor":  &g.EnhancedIncomeFloor,
		"enhanced_income_step":   &g.EnhancedIncomeStep,
		"enhanced_step_down":     &g.EnhancedStepDown,
		"family_income_ceiling":  &g.FamilyIncomeCeiling,
		"family_small_flat":      &g.FamilySmallFlat,
		"family_large_flat":      &g.FamilyLargeFlat,
		"proximity_same_address": &g.ProximitySameAddress,
		"proximity_near":         &g.ProximityNear,
		"proximity_near_limit":   &g.ProximityNearLimit,
	}, f.Grants, "grants"); err != nil {
		return err
	}

	if err := f.Fees.apply(&s.Fees); err != nil {
		return err
	}

	for name, lf := range f.Lenders {
		l, err := financing.ParseLender(name)
		if err != nil {
			return err
		}
		t := s.Lenders[l]
		if err := setDecs(map[string]*decimal.Decimal{
			"ltv":                   &t.LTV,
			"min_cash_deposit":      &t.MinCashDeposit,
			"savings_deposit_share": &t.SavingsDepositShare,
			"annual_rate":           &t.AnnualRate,
		}, map[string]string{
			"ltv":                   lf.LTV,
			"min_cash_deposit":      lf.MinCashDeposit,
			"savings_deposit_share": lf.SavingsDepositShare,
			"annual_rate":           lf.AnnualRate,
		}, "lenders."+name); err != nil {
			return err
		}
		if lf.CallerRate != nil {
			t.CallerRate = *lf.CallerRate
		}
		s.Lenders[l] = t
	}
	return nil
}

func (f feesFile) apply(fs *financing.FeeSchedule) error {
	var err error
	if len(f.StampDuty) > 0 {
		if fs.StampDuty, err = toBrackets(f.StampDuty, "fees.stamp_duty"); err != nil {
			return err
		}
	}
	if len(f.MortgageActing) > 0 {
		if fs.MortgageActing, err = toBrackets(f.MortgageActing, "fees.mortgage_acting"); err != nil {
			return err
		}
	}
	for name, raw := range f.PurchaseActing {
		m, err := financing.ParseSaleMode(name)
		if err != nil {
			return err
		}
		if fs.PurchaseActing[m], err = toBrackets(raw, "fees.purchase_acting."+name); err != nil {
			return err
		}
	}
	for name, raw := range f.Survey {
		ft, err := financing.ParseFlatType(name)
		if err != nil {
			return err
		}
		var d decimal.Decimal
		if err := setDec(&d, raw, "fees.survey."+name); err != nil {
			return err
		}
		fs.Survey[ft] = d
	}

	amounts := make(map[string]string, len(f.Amounts))
	for k, v := range f.Amounts {
		amounts[k] = fmt.Sprint(v)
	}
	return setDecs(map[string]*decimal.Decimal{
		"tax_rate":           &fs.TaxRate,
		"conveyancing_unit":  &fs.ConveyancingUnit,
		"mortgage_deed_rate": &fs.MortgageDeedRate,
		"mortgage_deed_cap":  &fs.MortgageDeedCap,
		"mortgage_escrow":    &fs.MortgageEscrow,
		"lease_escrow":       &fs.LeaseEscrow,
		"caveat_fee":         &fs.CaveatFee,
		"title_fee":          &fs.TitleFee,
	}, amounts, "fees")
}
