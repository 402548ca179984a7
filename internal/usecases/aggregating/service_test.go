package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/cache"
	"go.uber.org/mock/gomock"
)

func newTestService(aggregations *mocks.MockAggregationRepository) *Service {
	return &Service{
		cfg: &config.Config{
			Insights: config.Insights{
				CacheTTLMinutes:    10,
				FallbackWindowDays: 30,
			},
		},
		aggregations: aggregations,
		results:      cache.New(10 * time.Minute),
	}
}

func dateRange(start, end string) domain.DateRange {
	startDate, _ := time.Parse(time.DateOnly, start)
	endDate, _ := time.Parse(time.DateOnly, end)
	return domain.DateRange{StartDate: startDate, EndDate: endDate}
}

func TestService_Aggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregations := mocks.NewMockAggregationRepository(ctrl)
	service := newTestService(mockAggregations)

	policy := domain.CompanyPolicy{CompanyID: 42}
	requested := dateRange("2025-03-01", "2025-03-15")

	mockAggregations.EXPECT().
		SeriesByBucket(gomock.Any(), domain.GroupingDay).
		DoAndReturn(func(scope repository.AggregationScope, _ domain.Grouping) ([]domain.TimeSeriesPoint, error) {
			assert.Equal(t, int64(42), scope.CompanyID)
			assert.Equal(t, domain.EntityTypeCampaign, scope.EntityType)
			assert.Equal(t, requested, scope.Range)
			return []domain.TimeSeriesPoint{
				{
					Period: "2025-03-01",
					MetricTotals: domain.MetricTotals{
						Clicks:      100,
						Impressions: 2000,
						Cost:        50,
						Purchases7d: 10,
						Sales7d:     200,
					},
				},
			}, nil
		})

	mockAggregations.EXPECT().
		Totals(gomock.Any()).
		Return(&domain.MetricTotals{
			Clicks:      100,
			Impressions: 2000,
			Cost:        50,
			Purchases7d: 10,
			Sales7d:     200,
		}, nil)

	result, err := service.Aggregate(policy, InsightQuery{
		EntityType: domain.EntityTypeCampaign,
		AdTypeID:   domain.AdTypeSponsoredProducts,
		Range:      &requested,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.GroupingDay, result.Grouping)
	require.Len(t, result.TimeSeries, 1)

	// Razões derivadas recalculadas a partir das bases somadas
	assert.Equal(t, 0.5, result.Totals.CostPerClick)
	assert.Equal(t, 25.0, result.Totals.AcosClicks7d)
	assert.Equal(t, 4.0, result.Totals.RoasClicks7d)
	assert.Equal(t, 5.0, result.Totals.ClickThroughRate)
	assert.Equal(t, 10.0, result.Totals.ConversionRate7d)
	assert.Equal(t, result.Totals.CostPerClick, result.TimeSeries[0].CostPerClick)
}

func TestService_Aggregate_EmptyEntityListShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa: o repositório não pode ser tocado
	mockAggregations := mocks.NewMockAggregationRepository(ctrl)
	service := newTestService(mockAggregations)

	requested := dateRange("2025-03-01", "2025-03-15")
	result, err := service.Aggregate(domain.CompanyPolicy{CompanyID: 42}, InsightQuery{
		EntityType: domain.EntityTypeKeyword,
		EntityIDs:  []string{},
		Range:      &requested,
	})

	require.NoError(t, err)
	assert.Empty(t, result.TimeSeries)
	assert.Equal(t, domain.MetricTotals{}, result.Totals)
	assert.Equal(t, domain.GroupingDay, result.Grouping)
}

func TestService_Aggregate_ResolvesEffectiveRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregations := mocks.NewMockAggregationRepository(ctrl)
	service := newTestService(mockAggregations)

	effective := dateRange("2025-01-01", "2025-04-30")

	mockAggregations.EXPECT().
		EffectiveDateRange(gomock.Any()).
		Return(&effective, nil)

	// 120 dias: agrupamento por quinzena
	mockAggregations.EXPECT().
		SeriesByBucket(gomock.Any(), domain.GroupingTwoWeeks).
		Return([]domain.TimeSeriesPoint{}, nil)

	mockAggregations.EXPECT().
		Totals(gomock.Any()).
		Return(&domain.MetricTotals{}, nil)

	result, err := service.Aggregate(domain.CompanyPolicy{CompanyID: 42}, InsightQuery{
		EntityType: domain.EntityTypeCampaign,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.GroupingTwoWeeks, result.Grouping)
}

func TestService_Aggregate_FallbackWindowWhenNoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregations := mocks.NewMockAggregationRepository(ctrl)
	service := newTestService(mockAggregations)

	mockAggregations.EXPECT().
		EffectiveDateRange(gomock.Any()).
		Return(nil, nil)

	mockAggregations.EXPECT().
		SeriesByBucket(gomock.Any(), domain.GroupingDay).
		DoAndReturn(func(scope repository.AggregationScope, _ domain.Grouping) ([]domain.TimeSeriesPoint, error) {
			assert.Equal(t, 30, scope.Range.Days())
			return []domain.TimeSeriesPoint{}, nil
		})

	mockAggregations.EXPECT().
		Totals(gomock.Any()).
		Return(&domain.MetricTotals{}, nil)

	_, err := service.Aggregate(domain.CompanyPolicy{CompanyID: 42}, InsightQuery{
		EntityType: domain.EntityTypeCampaign,
	})

	require.NoError(t, err)
}

func TestService_Aggregate_CachesResultPerScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregations := mocks.NewMockAggregationRepository(ctrl)
	service := newTestService(mockAggregations)

	requested := dateRange("2025-03-01", "2025-03-15")

	// Duas consultas idênticas viram uma única rodada de queries
	mockAggregations.EXPECT().
		SeriesByBucket(gomock.Any(), domain.GroupingDay).
		Return([]domain.TimeSeriesPoint{}, nil).
		Times(1)

	mockAggregations.EXPECT().
		Totals(gomock.Any()).
		Return(&domain.MetricTotals{Clicks: 7}, nil).
		Times(1)

	query := InsightQuery{
		EntityType: domain.EntityTypeCampaign,
		Range:      &requested,
	}

	first, err := service.Aggregate(domain.CompanyPolicy{CompanyID: 42}, query)
	require.NoError(t, err)

	second, err := service.Aggregate(domain.CompanyPolicy{CompanyID: 42}, query)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
