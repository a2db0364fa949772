package stats

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dao-activity-lab/internal/classify"
	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/extract"
	"dao-activity-lab/internal/fixtures"
	"dao-activity-lab/internal/observability"
	"dao-activity-lab/internal/storage"
	"dao-activity-lab/internal/storage/memory"
)

var refNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func epochDaysAgo(days int) string {
	return strconv.FormatInt(refNow.Add(-time.Duration(days)*24*time.Hour).Unix(), 10)
}

func newTestAggregator(source storage.RecordSource) (*Aggregator, *observability.Metrics) {
	m := observability.NewMetrics("test", prometheus.NewRegistry())
	a := NewAggregator(source).
		WithClock(func() time.Time { return refNow }).
		WithMetrics(m).
		WithWorkers(4)
	return a, m
}

func insert(t *testing.T, store *memory.RecordStore, p domain.Platform, tbl *domain.Table) {
	t.Helper()
	require.NoError(t, store.InsertTable(context.Background(), p, tbl))
}

func aragonStore(t *testing.T) *memory.RecordStore {
	t.Helper()
	store := memory.NewRecordStore()
	insert(t, store, domain.PlatformAragon, &domain.Table{
		Category: "organizations",
		Columns:  []string{"orgAddress", "name", "createdAt"},
		Rows: [][]string{
			{"0xold", "Old Active", epochDaysAgo(400)},
			{"0xquiet", "Quiet", epochDaysAgo(400)},
		},
	})
	txs := &domain.Table{Category: "transactions", Columns: []string{"orgAddress", "date"}}
	for i := 0; i < 10; i++ {
		txs.Rows = append(txs.Rows, []string{"0xold", epochDaysAgo(10 + i)})
	}
	insert(t, store, domain.PlatformAragon, txs)
	return store
}

func TestGetStats_Aragon(t *testing.T) {
	a, m := newTestAggregator(aragonStore(t))

	result, err := a.GetStats(context.Background(), "Aragon")
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformAragon, result.Platform)
	assert.Equal(t, 2, result.TotalOrganizations)
	assert.Equal(t, 1, result.HighlyActive)
	assert.Equal(t, 1, result.NoActivity)
	assert.Equal(t, 1, result.ActiveOrganizations)
	assert.Equal(t, 1, result.InactiveOrganizations)

	require.Len(t, result.Detailed.HighlyActiveDAOs, 1)
	summary := result.Detailed.HighlyActiveDAOs[0]
	assert.Equal(t, "0xold", summary.Address)
	assert.Equal(t, 10, summary.DaysSinceActivity)
	assert.Equal(t, 400, summary.AgeDays)
	assert.Equal(t, 10, summary.Counts[domain.CounterTransactions])
	assert.Empty(t, result.Detailed.ModeratelyActiveDAOs)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.AnalysisRunsTotal.WithLabelValues("aragon", "ok")))
	assert.Equal(t, float64(12), testutil.ToFloat64(m.RowsLoaded.WithLabelValues("aragon")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrganizationsByCategory.WithLabelValues("aragon", "highly_active")))
}

func TestGetStats_UnsupportedPlatform(t *testing.T) {
	a, _ := newTestAggregator(memory.NewRecordStore())

	_, err := a.GetStats(context.Background(), "compound")

	var unsupported *domain.UnsupportedPlatformError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "compound", unsupported.Name)

	var analysis *domain.PlatformAnalysisError
	assert.False(t, errors.As(err, &analysis), "validation errors must not be wrapped")
}

func TestGetStats_MissingMandatory(t *testing.T) {
	store := memory.NewRecordStore()
	insert(t, store, domain.PlatformAragon, &domain.Table{Category: "transactions", Columns: []string{"orgAddress", "date"}})
	a, m := newTestAggregator(store)

	_, err := a.GetStats(context.Background(), "aragon")

	var analysis *domain.PlatformAnalysisError
	require.ErrorAs(t, err, &analysis)
	assert.Equal(t, domain.PlatformAragon, analysis.Platform)

	var missing *domain.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "organizations", missing.Category)
	assert.Contains(t, err.Error(), "organizations")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoadErrors.WithLabelValues("aragon", "organizations", "missing")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AnalysisRunsTotal.WithLabelValues("aragon", "error")))
}

// slowSource delays loads of one category.
type slowSource struct {
	storage.RecordSource
	category string
	delay    time.Duration
}

func (s slowSource) Load(ctx context.Context, p domain.Platform, category string) (*domain.Table, error) {
	if category == s.category {
		time.Sleep(s.delay)
	}
	return s.RecordSource.Load(ctx, p, category)
}

func TestGetStats_MissingMandatoryReportsFirstCategory(t *testing.T) {
	for _, p := range domain.Platforms {
		spec, ok := extract.Lookup(p)
		require.True(t, ok)

		source := slowSource{RecordSource: memory.NewRecordStore(), category: spec.Mandatory[0], delay: 20 * time.Millisecond}
		a, _ := newTestAggregator(source)

		_, err := a.GetStats(context.Background(), string(p))

		var missing *domain.MissingInputError
		require.ErrorAs(t, err, &missing, "platform %s", p)
		assert.Equal(t, spec.Mandatory[0], missing.Category, "platform %s", p)
	}
}

func TestGetStats_MalformedData(t *testing.T) {
	store := aragonStore(t)
	insert(t, store, domain.PlatformAragon, &domain.Table{
		Category: "apps",
		Columns:  []string{"appId"},
		Rows:     [][]string{{"0xvoting"}},
	})
	a, _ := newTestAggregator(store)

	_, err := a.GetStats(context.Background(), "aragon")

	var malformed *domain.MalformedDataError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "organizationId", malformed.Column)
}

func TestGetStats_Canceled(t *testing.T) {
	a, _ := newTestAggregator(aragonStore(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.GetStats(ctx, "aragon")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetStats_ThresholdOverride(t *testing.T) {
	custom, _ := classify.DefaultThresholds(domain.PlatformAragon)
	custom.HighVolume = []classify.Minimum{{Counter: domain.CounterTransactions, Min: 50}}

	a, _ := newTestAggregator(aragonStore(t))
	a.WithThresholds(map[domain.Platform]classify.Thresholds{domain.PlatformAragon: custom})

	result, err := a.GetStats(context.Background(), "aragon")
	require.NoError(t, err)
	assert.Equal(t, 0, result.HighlyActive)
	assert.Equal(t, 1, result.ModeratelyActive)
}

func TestGetStats_InvalidThresholdOverride(t *testing.T) {
	a, _ := newTestAggregator(aragonStore(t))
	a.WithThresholds(map[domain.Platform]classify.Thresholds{domain.PlatformAragon: {}})

	_, err := a.GetStats(context.Background(), "aragon")
	assert.ErrorIs(t, err, classify.ErrInvalidThresholds)
}

func TestGetAllStats_Fixtures(t *testing.T) {
	store := memory.NewRecordStore()
	require.NoError(t, fixtures.LoadFixtures(context.Background(), store, refNow))
	a, _ := newTestAggregator(store)

	all := a.GetAllStats(context.Background())
	require.Len(t, all, len(domain.Platforms))

	for _, ps := range all {
		require.NoError(t, ps.Err, "%s", ps.Platform)
		r := ps.Result
		sum := r.HighlyActive + r.ModeratelyActive + r.MinimallyActive + r.PotentialTest + r.NoActivity
		assert.Equal(t, r.TotalOrganizations, sum, "%s partition", ps.Platform)
		assert.Equal(t, r.TotalOrganizations-r.ActiveOrganizations, r.InactiveOrganizations)
		assert.Equal(t, 1, r.HighlyActive, "%s highly active", ps.Platform)
		assert.Equal(t, 1, r.ModeratelyActive, "%s moderately active", ps.Platform)
	}
}

func TestGetAllStats_IndependentFailures(t *testing.T) {
	a, _ := newTestAggregator(aragonStore(t))

	all := a.GetAllStats(context.Background())
	require.Len(t, all, 3)

	assert.NoError(t, all[0].Err)
	assert.NotNil(t, all[0].Result)
	for _, ps := range all[1:] {
		var missing *domain.MissingInputError
		assert.ErrorAs(t, ps.Err, &missing, "%s", ps.Platform)
		assert.Nil(t, ps.Result)
	}
}
