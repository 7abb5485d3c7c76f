package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/aggregate"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/display"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Holdings(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	testutil.SeedScenario(t, db)
	svc := testutil.NewTestServices(t, db)

	t.Run("native currency", func(t *testing.T) {
		view, err := svc.Reports.Holdings(ctx, model.CurrencyNative)
		require.NoError(t, err)

		require.Len(t, view.Rows, 3)
		assert.Equal(t, "AAPL", view.Rows[0].Label)
		assert.Equal(t, int64(12), view.Rows[0].Quantity)
		assert.Equal(t, "11500", view.Rows[0].CostBasis.String())
		assert.Equal(t, "MSFT"+aggregate.UnlistedSuffix, view.Rows[1].Label)
		assert.True(t, view.Rows[1].Unlisted)
		assert.Equal(t, "GGAL", view.Rows[2].Ticker)
		assert.Equal(t, int64(0), view.Rows[2].Quantity)
		assert.Equal(t, "13500", view.TotalInvested.String())

		assert.Equal(t, []string{"AAPL", "MSFT" + aggregate.UnlistedSuffix}, view.Chart.Labels)
		assert.Equal(t, "ARS", view.Chart.Currency)
	})

	t.Run("usd", func(t *testing.T) {
		view, err := svc.Reports.Holdings(ctx, model.CurrencyUSD)
		require.NoError(t, err)

		assert.Equal(t, "14", view.TotalInvested.String())
		assert.Equal(t, "12", view.Rows[0].CostBasis.String())
		assert.Equal(t, "USD", view.Chart.Currency)
	})
}

func TestReportService_OtherReports(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	testutil.SeedScenario(t, db)
	svc := testutil.NewTestServices(t, db)

	allocation, err := svc.Reports.Allocation(ctx, model.CurrencyNative)
	require.NoError(t, err)
	require.Len(t, allocation.Rows, 3)
	assert.Equal(t, "60", allocation.Rows[0].TargetRatio.String())
	assert.Equal(t, "40", allocation.Rows[2].TargetRatio.String())
	assert.True(t, allocation.Rows[1].TargetRatio.IsZero(), "unlisted rows have no target")

	netWorth, err := svc.Reports.NetWorth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "14", netWorth.PortfolioUSD.String())
	assert.Equal(t, "5000", netWorth.AssetsUSD.String())
	assert.Equal(t, "5014", netWorth.TotalNetWorth.String())
	assert.Equal(t, []string{display.PortfolioColor, display.AssetColor("House")}, netWorth.Chart.Colors)

	flows, err := svc.Reports.Flows(ctx, model.GranularityYear)
	require.NoError(t, err)
	require.Len(t, flows.Buckets, 2)
	assert.Equal(t, "2024", flows.Buckets[1].Key)
	assert.Equal(t, "3500", flows.Buckets[1].NetNative.String())
	assert.Equal(t, "4", flows.Buckets[1].NetUSD.String())
	assert.Equal(t, []float64{10, 4}, flows.Chart.Values)

	monthly, err := svc.Reports.Flows(ctx, model.GranularityMonth)
	require.NoError(t, err)
	assert.Len(t, monthly.Buckets, 3)
}

// TestReportService_CacheInvalidation verifies writes are visible in the
// next report.
//
// WHY: Reports are cached; a cached report that survives a write would show
// the user stale holdings right after they record an operation.
func TestReportService_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	testutil.SeedScenario(t, db)
	svc := testutil.NewTestServices(t, db)

	before, err := svc.Reports.NetWorth(ctx)
	require.NoError(t, err)

	req := validOperation()
	req.Amount = before.PortfolioUSD.Mul(req.MEP)
	_, err = svc.Operations.CreateOperation(ctx, req)
	require.NoError(t, err)

	after, err := svc.Reports.NetWorth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "28", after.PortfolioUSD.String())

	require.NoError(t, svc.Transfer.Clear(ctx))
	cleared, err := svc.Reports.NetWorth(ctx)
	require.NoError(t, err)
	assert.True(t, cleared.TotalNetWorth.IsZero())
}

func TestReportService_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	testutil.SeedScenario(t, db)
	svc := testutil.NewTestServices(t, db)

	first, err := svc.Reports.Holdings(ctx, model.CurrencyNative)
	require.NoError(t, err)

	// A write that bypasses the services is not seen until invalidation.
	testutil.CreateSymbol(t, db, "YPF", "5")

	cached, err := svc.Reports.Holdings(ctx, model.CurrencyNative)
	require.NoError(t, err)
	assert.Len(t, cached.Rows, len(first.Rows))

	svc.Reports.Invalidate()
	fresh, err := svc.Reports.Holdings(ctx, model.CurrencyNative)
	require.NoError(t, err)
	assert.Len(t, fresh.Rows, len(first.Rows)+1)
}

func TestReportService_CacheDisabled(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	reports := service.NewReportService(repository.NewSnapshotRepository(db), display.NewFormatter("", "", ""), 0, zerolog.Nop())

	_, err := reports.Holdings(ctx, model.CurrencyNative)
	require.NoError(t, err)

	testutil.CreateSymbol(t, db, "YPF", "5")
	view, err := reports.Holdings(ctx, model.CurrencyNative)
	require.NoError(t, err)
	assert.Len(t, view.Rows, 1)
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	testutil.SeedScenario(t, db)
	svc := testutil.NewTestServices(t, db)

	dash, err := svc.Reports.Dashboard(ctx, model.CurrencyUSD, model.GranularityMonth)
	require.NoError(t, err)

	holdings, err := svc.Reports.Holdings(ctx, model.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, holdings.TotalInvested.String(), dash.Holdings.TotalInvested.String())
	assert.Len(t, dash.Allocation.Rows, len(holdings.Rows))
	assert.Equal(t, model.CurrencyUSD, dash.Allocation.Currency)
	assert.Equal(t, "5014", dash.NetWorth.TotalNetWorth.String())
	assert.Equal(t, model.GranularityMonth, dash.Flows.Granularity)
	assert.Len(t, dash.Flows.Series, 3)
}

func TestReportService_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestServices(t, db)

	dash, err := svc.Reports.Dashboard(ctx, model.CurrencyNative, model.GranularityYear)
	require.NoError(t, err)
	assert.Empty(t, dash.Holdings.Rows)
	assert.True(t, dash.NetWorth.TotalNetWorth.IsZero())
	assert.NotNil(t, dash.Flows.Buckets)
	assert.Empty(t, dash.Holdings.Chart.Values)
}
