package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/aggregate"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/display"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// HoldingsView is a holdings report with its chart series.
type HoldingsView struct {
	model.HoldingsReport
	Chart display.Chart `json:"chart"`
}

// AllocationView lists target against actual allocation.
type AllocationView struct {
	Currency model.DisplayCurrency `json:"currency"`
	Rows     []model.AllocationRow `json:"rows"`
	Chart    display.Chart         `json:"chart"`
}

// NetWorthView is a net worth report with its chart series.
type NetWorthView struct {
	model.NetWorthReport
	Chart display.Chart `json:"chart"`
}

// FlowView is a flow report with its chart series.
type FlowView struct {
	model.FlowReport
	Chart display.Chart `json:"chart"`
}

// Dashboard bundles every report computed from one snapshot.
type Dashboard struct {
	Holdings   HoldingsView   `json:"holdings"`
	Allocation AllocationView `json:"allocation"`
	NetWorth   NetWorthView   `json:"netWorth"`
	Flows      FlowView       `json:"flows"`
}

// ReportService computes reports from a consistent snapshot of every
// collection and caches the results until the next write.
type ReportService struct {
	snapshotRepo *repository.SnapshotRepository
	formatter    display.Formatter
	cache        *cache.Cache
	ttl          time.Duration
	generation   atomic.Uint64
	log          zerolog.Logger
}

// NewReportService creates a new ReportService. A non-positive ttl disables caching.
func NewReportService(
	snapshotRepo *repository.SnapshotRepository,
	formatter display.Formatter,
	ttl time.Duration,
	log zerolog.Logger,
) *ReportService {
	s := &ReportService{
		snapshotRepo: snapshotRepo,
		formatter:    formatter,
		ttl:          ttl,
		log:          log.With().Str("component", "reports").Logger(),
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Formatter returns the formatter reports are rendered with.
func (s *ReportService) Formatter() display.Formatter {
	return s.formatter
}

// Invalidate drops every cached report. Results computed from a snapshot
// taken before the call are never served afterwards.
func (s *ReportService) Invalidate() {
	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Flush()
	}
}

// Holdings returns per-instrument quantity and cost basis in currency.
func (s *ReportService) Holdings(ctx context.Context, currency model.DisplayCurrency) (HoldingsView, error) {
	return cached(ctx, s, "holdings:"+string(currency), func(snap model.Snapshot) HoldingsView {
		return s.holdings(snap, currency)
	})
}

// Allocation returns target against actual allocation in currency.
func (s *ReportService) Allocation(ctx context.Context, currency model.DisplayCurrency) (AllocationView, error) {
	return cached(ctx, s, "allocation:"+string(currency), func(snap model.Snapshot) AllocationView {
		return s.allocation(s.holdings(snap, currency).HoldingsReport)
	})
}

// NetWorth returns the USD net worth of the portfolio and declared assets.
func (s *ReportService) NetWorth(ctx context.Context) (NetWorthView, error) {
	return cached(ctx, s, "networth", s.netWorth)
}

// Flows returns gross and net cash flow bucketed by granularity.
func (s *ReportService) Flows(ctx context.Context, granularity model.Granularity) (FlowView, error) {
	return cached(ctx, s, "flows:"+string(granularity), func(snap model.Snapshot) FlowView {
		return s.flows(snap, granularity)
	})
}

// Dashboard computes all four reports from a single snapshot concurrently.
func (s *ReportService) Dashboard(ctx context.Context, currency model.DisplayCurrency, granularity model.Granularity) (Dashboard, error) {
	key := fmt.Sprintf("dashboard:%s:%s", currency, granularity)
	return cachedErr(ctx, s, key, func(snap model.Snapshot) (Dashboard, error) {
		var d Dashboard
		var g errgroup.Group

		g.Go(func() error {
			d.Holdings = s.holdings(snap, currency)
			d.Allocation = s.allocation(d.Holdings.HoldingsReport)
			return nil
		})
		g.Go(func() error {
			d.NetWorth = s.netWorth(snap)
			return nil
		})
		g.Go(func() error {
			d.Flows = s.flows(snap, granularity)
			return nil
		})

		if err := g.Wait(); err != nil {
			return Dashboard{}, err
		}
		return d, nil
	})
}

func (s *ReportService) holdings(snap model.Snapshot, currency model.DisplayCurrency) HoldingsView {
	r := aggregate.Holdings(snap.Operations, snap.Symbols, currency)
	return HoldingsView{HoldingsReport: r, Chart: s.formatter.HoldingsChart(r)}
}

func (s *ReportService) allocation(r model.HoldingsReport) AllocationView {
	rows := aggregate.Allocation(r)
	return AllocationView{Currency: r.Currency, Rows: rows, Chart: s.formatter.AllocationChart(rows)}
}

func (s *ReportService) netWorth(snap model.Snapshot) NetWorthView {
	r := aggregate.NetWorth(snap.Operations, snap.Assets)
	return NetWorthView{NetWorthReport: r, Chart: s.formatter.NetWorthChart(r)}
}

func (s *ReportService) flows(snap model.Snapshot, granularity model.Granularity) FlowView {
	r := aggregate.Flows(snap.Operations, granularity)
	return FlowView{FlowReport: r, Chart: s.formatter.FlowChart(r)}
}

func cached[T any](ctx context.Context, s *ReportService, key string, build func(model.Snapshot) T) (T, error) {
	return cachedErr(ctx, s, key, func(snap model.Snapshot) (T, error) {
		return build(snap), nil
	})
}

// cachedErr serves key from the cache or builds it from a fresh snapshot.
// Keys are scoped to the generation current when the snapshot is loaded.
func cachedErr[T any](ctx context.Context, s *ReportService, key string, build func(model.Snapshot) (T, error)) (T, error) {
	var zero T
	key = fmt.Sprintf("%d:%s", s.generation.Load(), key)

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if view, ok := v.(T); ok {
				return view, nil
			}
		}
	}

	snap, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to load data for report: %w", err)
	}

	view, err := build(snap)
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		s.cache.Set(key, view, cache.DefaultExpiration)
		s.log.Debug().Str("key", key).Msg("Report cached")
	}
	return view, nil
}
