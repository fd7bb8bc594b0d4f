package financing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LenderSelection names the lenders to quote, plus the caller's annual rate
// (percent) for lenders that take one.
type LenderSelection struct {
	Lenders           []Lender
	PrivateAnnualRate decimal.NullDecimal
}

// PairError reports a listing×lender pair that was left out of a batch.
type PairError struct {
	ListingIndex int
	Lender       Lender
	Err          error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("listing %d, lender %s: %v", e.ListingIndex, e.Lender, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }

func (e *PairError) Failure() Failure {
	return Failure{ListingIndex: e.ListingIndex, Lender: e.Lender, Reason: e.Err.Error()}
}

// Batch holds the records of one run, ordered by lender then listing, and the
// pairs that failed.
type Batch struct {
	Records  []Record
	Failures []PairError
}

// Engine computes financing records against a fixed schedule. It holds no
// mutable state and may be shared.
type Engine struct {
	s      Schedule
	digest string
}

func NewEngine(s Schedule) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrInvalidSchedule, err)
	}
	sum := sha256.Sum256(raw)
	return &Engine{s: s.clone(), digest: hex.EncodeToString(sum[:])}, nil
}

// ScheduleDigest identifies the schedule's contents. Engines built from equal
// schedules share a digest.
func (e *Engine) ScheduleDigest() string { return e.digest }

// Schedule returns a copy of the engine's schedule.
func (e *Engine) Schedule() Schedule { return e.s.clone() }

func (e *Engine) Profile(buyers []Buyer) (BuyerProfile, error) {
	return NewBuyerProfile(buyers, e.s)
}

type lenderQuote struct {
	lender Lender
	terms  LenderTerms
	rate   decimal.Decimal
}

func (e *Engine) resolve(sel LenderSelection) ([]lenderQuote, error) {
	if len(sel.Lenders) == 0 {
		return nil, fmt.Errorf("%w: no lender selected", ErrUnknownLender)
	}
	out := make([]lenderQuote, 0, len(sel.Lenders))
	for _, l := range sel.Lenders {
		terms, ok := e.s.Lenders[l]
		if !ok || !l.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLender, l)
		}
		annual := terms.AnnualRate
		if terms.CallerRate {
			if !sel.PrivateAnnualRate.Valid {
				return nil, fmt.Errorf("%w: lender %s needs an annual rate", ErrMissingRate, l)
			}
			annual = sel.PrivateAnnualRate.Decimal
		}
		out = append(out, lenderQuote{lender: l, terms: terms, rate: PeriodicRate(annual, e.s.PeriodsPerYear)})
	}
	return out, nil
}

// Run computes one record per listing×lender. Selection and profile problems
// fail the whole batch; a listing that cannot be financed only drops its own
// pairs, which are reported in Batch.Failures.
func (e *Engine) Run(profile BuyerProfile, listings []FlatListing, sel LenderSelection) (Batch, error) {
	if err := profile.Validate(); err != nil {
		return Batch{}, err
	}
	quotes, err := e.resolve(sel)
	if err != nil {
		return Batch{}, err
	}

	type enriched struct {
		grants  decimal.Decimal
		savings decimal.Decimal
		err     error
	}
	prepared := make([]enriched, len(listings))
	for i, l := range listings {
		if err := l.Validate(); err != nil {
			prepared[i].err = err
			continue
		}
		g := e.s.Grants.ComputeGrants(l.SaleMode, l.FlatType, l.Proximity, profile.CombinedIncome)
		prepared[i] = enriched{grants: g, savings: profile.CombinedSavings.Add(g)}
	}

	var b Batch
	for _, q := range quotes {
		for i, l := range listings {
			p := prepared[i]
			if p.err != nil {
				b.Failures = append(b.Failures, PairError{ListingIndex: i, Lender: q.lender, Err: p.err})
				continue
			}
			rec, err := e.record(profile, l, p.grants, p.savings, q)
			if err != nil {
				b.Failures = append(b.Failures, PairError{ListingIndex: i, Lender: q.lender, Err: err})
				continue
			}
			rec.ListingIndex = i
			b.Records = append(b.Records, rec)
		}
	}
	return b, nil
}

func (e *Engine) record(p BuyerProfile, l FlatListing, grants, savings decimal.Decimal, q lenderQuote) (Record, error) {
	deposit := ComputeDeposit(l.Price, q.terms)
	loan, err := ComputeLoan(l.Price, savings, q.terms)
	if err != nil {
		return Record{}, err
	}
	mortgage, err := ComputeMortgage(loan, q.rate, e.s.NumPeriods())
	if err != nil {
		return Record{}, err
	}
	fees, err := e.s.Fees.Itemize(l.SaleMode, l.FlatType, l.Price, loan)
	if err != nil {
		return Record{}, err
	}
	total := fees.Total()

	return Record{
		Town:            l.Town,
		ProjectName:     l.ProjectName,
		Block:           l.Block,
		UnitNo:          l.UnitNo,
		SaleMode:        l.SaleMode,
		FlatType:        l.FlatType,
		Price:           l.Price,
		Proximity:       l.Proximity,
		Lender:          q.lender,
		LTV:             q.terms.LTV,
		PeriodicRate:    q.rate,
		Grants:          grants,
		EnrichedSavings: savings,
		Deposit:         deposit,
		Loan:            loan,
		LoanOffset:      l.Price.Sub(deposit).Sub(loan),
		Mortgage:        mortgage,
		StampDuty:       fees.StampDuty,
		ConveyancingFee: fees.Conveyancing,
		SurveyFee:       fees.Survey,
		OtherFees:       fees.Other,
		TotalFees:       total,
		DepositInCash:   ComputeDepositShortfall(savings, deposit, total, q.terms),
		MortgageInCash:  ComputeMortgageShortfall(mortgage, p.MonthlyContribution),
	}, nil
}
