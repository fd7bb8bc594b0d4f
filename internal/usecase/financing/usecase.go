package financing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domain "hdb-financing/internal/domain/financing"
	"hdb-financing/internal/domain/uow"
	"hdb-financing/internal/infrastructure/metrics"
	"hdb-financing/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	engine   *domain.Engine
	runs     domain.RunRepository
	records  domain.RecordRepository
	uow      uow.UnitOfWork
	cache    domain.QuoteCache
	cacheTTL time.Duration
	log      *zap.Logger

	scheduleDigest string
}

// NewUsecase wires the quote flow. cache may be nil to disable caching, and a
// nil logger discards output.
func NewUsecase(
	engine *domain.Engine,
	runs domain.RunRepository,
	records domain.RecordRepository,
	u uow.UnitOfWork,
	cache domain.QuoteCache,
	cacheTTL time.Duration,
	log *zap.Logger,
) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		engine:         engine,
		runs:           runs,
		records:        records,
		uow:            u,
		cache:          cache,
		cacheTTL:       cacheTTL,
		log:            log,
		scheduleDigest: engine.ScheduleDigest(),
	}
}

type normalized struct {
	Schedule string               `json:"schedule"`
	Buyers   []domain.Buyer       `json:"buyers"`
	Listings []domain.FlatListing `json:"listings"`
	Lenders  []domain.Lender      `json:"lenders"`
	Rate     decimal.NullDecimal  `json:"rate"`
}

func (in QuoteInput) normalize() (normalized, error) {
	var n normalized
	n.Buyers = make([]domain.Buyer, len(in.Buyers))
	for i, b := range in.Buyers {
		n.Buyers[i] = domain.Buyer{
			MonthlyIncome:  decimal.NewFromFloat(b.MonthlyIncome),
			SavingsBalance: decimal.NewFromFloat(b.SavingsBalance),
		}
	}
	n.Listings = make([]domain.FlatListing, len(in.Listings))
	for i, l := range in.Listings {
		mode, err := domain.ParseSaleMode(l.SaleMode)
		if err != nil {
			return n, err
		}
		ft, err := domain.ParseFlatType(l.FlatType)
		if err != nil {
			return n, err
		}
		n.Listings[i] = domain.FlatListing{
			SaleMode:    mode,
			FlatType:    ft,
			Price:       decimal.NewFromFloat(l.Price),
			Proximity:   decimal.NewFromFloat(l.Proximity),
			Town:        l.Town,
			ProjectName: l.ProjectName,
			Block:       l.Block,
			UnitNo:      l.UnitNo,
		}
	}
	lenders, err := domain.ParseLenders(in.Lenders)
	if err != nil {
		return n, err
	}
	n.Lenders = lenders
	if in.PrivateAnnualRate != nil {
		n.Rate = decimal.NewNullDecimal(decimal.NewFromFloat(*in.PrivateAnnualRate))
	}
	return n, nil
}

func (n normalized) fingerprint() string {
	// strings and decimals only, Marshal cannot fail
	b, _ := json.Marshal(n)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Quote computes every listing with every selected lender, stores the run and
// returns it. An identical request within the cache TTL is answered from the
// cache with Cached set.
func (u *Usecase) Quote(ctx context.Context, in QuoteInput) (*QuoteDTO, error) {
	start := time.Now()

	n, err := in.normalize()
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	n.Schedule = u.scheduleDigest
	profile, err := u.engine.Profile(n.Buyers)
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	fp := n.fingerprint()
	if dto, ok := u.cached(ctx, fp); ok {
		metrics.QuotesTotal.WithLabelValues(metrics.OutcomeCached).Inc()
		return dto, nil
	}

	batch, err := u.engine.Run(profile, n.Listings, domain.LenderSelection{Lenders: n.Lenders, PrivateAnnualRate: n.Rate})
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	names := make([]string, len(n.Lenders))
	for i, l := range n.Lenders {
		names[i] = string(l)
	}
	run := &domain.Run{
		RunID:               id.NewID32(),
		Fingerprint:         fp,
		CombinedIncome:      profile.CombinedIncome,
		CombinedSavings:     profile.CombinedSavings,
		MonthlyContribution: profile.MonthlyContribution,
		Lenders:             strings.Join(names, ","),
		PrivateAnnualRate:   n.Rate,
		ListingCount:        len(n.Listings),
	}
	*run = run.Rounded()

	failures := make([]domain.Failure, 0, len(batch.Failures))
	for i := range batch.Failures {
		pe := &batch.Failures[i]
		u.log.Warn("financing: pair skipped",
			zap.String("run_id", run.RunID),
			zap.Int("listing", pe.ListingIndex),
			zap.String("lender", string(pe.Lender)),
			zap.Error(pe.Err),
		)
		metrics.PairFailuresTotal.WithLabelValues(string(pe.Lender), failureKind(pe.Err)).Inc()
		failures = append(failures, pe.Failure())
	}
	records := make([]domain.Record, len(batch.Records))
	for i, rec := range batch.Records {
		records[i] = rec.Rounded()
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Runs.Create(ctx, run); err != nil {
			return err
		}
		if err := r.Records.CreateRecords(ctx, run.ID, records); err != nil {
			return err
		}
		return r.Records.CreateFailures(ctx, run.ID, failures)
	})
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		u.log.Error("financing: persist run", zap.String("run_id", run.RunID), zap.Error(err))
		return nil, err
	}
	for _, rec := range records {
		metrics.RecordsTotal.WithLabelValues(string(rec.Lender)).Inc()
	}
	u.log.Info("financing: run stored",
		zap.String("run_id", run.RunID),
		zap.Int("records", len(records)),
		zap.Int("failures", len(failures)),
	)

	dto := toDTO(run, records, failures)
	u.store(ctx, fp, dto)

	metrics.QuotesTotal.WithLabelValues(metrics.OutcomeComputed).Inc()
	metrics.QuoteDuration.Observe(time.Since(start).Seconds())
	return dto, nil
}

// GetRun loads a stored run with its records and failures.
func (u *Usecase) GetRun(ctx context.Context, runID string) (*QuoteDTO, error) {
	run, err := u.runs.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	recs, err := u.records.ListRecords(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	fails, err := u.records.ListFailures(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(run, recs, fails), nil
}

func (u *Usecase) cached(ctx context.Context, fp string) (*QuoteDTO, bool) {
	if u.cache == nil {
		return nil, false
	}
	b, ok, err := u.cache.Get(ctx, fp)
	if err != nil {
		u.log.Warn("financing: quote cache get", zap.String("fingerprint", fp), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var dto QuoteDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		u.log.Warn("financing: quote cache decode", zap.String("fingerprint", fp), zap.Error(err))
		return nil, false
	}
	dto.Cached = true
	return &dto, true
}

func (u *Usecase) store(ctx context.Context, fp string, dto *QuoteDTO) {
	if u.cache == nil || u.cacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(dto)
	if err != nil {
		u.log.Warn("financing: quote cache encode", zap.String("run_id", dto.RunID), zap.Error(err))
		return
	}
	if err := u.cache.Set(ctx, fp, b, u.cacheTTL); err != nil {
		u.log.Warn("financing: quote cache set", zap.String("run_id", dto.RunID), zap.Error(err))
	}
}

func toDTO(run *domain.Run, recs []domain.Record, fails []domain.Failure) *QuoteDTO {
	if recs == nil {
		recs = []domain.Record{}
	}
	if fails == nil {
		fails = []domain.Failure{}
	}
	var lenders []string
	if run.Lenders != "" {
		lenders = strings.Split(run.Lenders, ",")
	}
	return &QuoteDTO{
		RunID:               run.RunID,
		CombinedIncome:      run.CombinedIncome,
		CombinedSavings:     run.CombinedSavings,
		MonthlyContribution: run.MonthlyContribution,
		Lenders:             lenders,
		PrivateAnnualRate:   run.PrivateAnnualRate,
		Records:             recs,
		Failures:            fails,
		CreatedAt:           run.CreatedAt,
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEnumValue):
		return "invalid_enum"
	case errors.Is(err, domain.ErrNonPositiveInput):
		return "non_positive_input"
	case errors.Is(err, domain.ErrDegenerateRate):
		return "degenerate_rate"
	}
	return "other"
}
