package recording

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/cache"
	"go.uber.org/mock/gomock"
)

func newTestService(definitions *mocks.MockMetricDefinitionRepository, statistics *mocks.MockStatisticRepository) *Service {
	return &Service{
		cfg:             &config.Config{},
		definitions:     definitions,
		statistics:      statistics,
		catalog:         cache.New(10 * time.Minute),
		defaultCurrency: "USD",
	}
}

func TestService_RecordValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDefinitions := mocks.NewMockMetricDefinitionRepository(ctrl)
	mockStatistics := mocks.NewMockStatisticRepository(ctrl)
	service := newTestService(mockDefinitions, mockStatistics)

	policy := domain.CompanyPolicy{CompanyID: 42}
	startDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("grava métrica inteira conhecida", func(t *testing.T) {
		def := &domain.MetricDefinition{
			ID:         1,
			Name:       "clicks",
			EntityType: domain.EntityTypeCampaign,
			AdTypeID:   domain.AdTypeSponsoredProducts,
			ValueType:  domain.ValueTypeInteger,
		}

		mockDefinitions.EXPECT().
			GetByNameAndEntityType("clicks", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts).
			Return(def, nil)

		mockStatistics.EXPECT().
			FindOrCreate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *domain.StatisticRecord) (*domain.StatisticRecord, error) {
				assert.Equal(t, int64(42), record.CompanyID)
				assert.Equal(t, "CAMP001", record.EntityID)
				record.ID = "stat-1"
				return record, nil
			})

		mockStatistics.EXPECT().
			UpsertMetricValue(gomock.Any(), "stat-1", def, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ *domain.MetricDefinition, value domain.MetricValue) (*domain.MetricRecord, error) {
				assert.Equal(t, domain.ValueTypeInteger, value.Type)
				assert.Equal(t, 1234.0, value.Numeric)
				return &domain.MetricRecord{ID: "rec-1", StatisticID: "stat-1", Value: value}, nil
			})

		record, err := service.RecordValue(context.Background(), policy, RecordInput{
			Metric:     "clicks",
			EntityID:   "CAMP001",
			EntityType: domain.EntityTypeCampaign,
			AdTypeID:   domain.AdTypeSponsoredProducts,
			StartDate:  startDate,
			EndDate:    endDate,
			RawValue:   "1,234",
		})

		require.NoError(t, err)
		assert.Equal(t, "rec-1", record.ID)
	})

	t.Run("métrica fora do catálogo devolve erro tipado", func(t *testing.T) {
		mockDefinitions.EXPECT().
			GetByNameAndEntityType("viewability", domain.EntityTypeKeyword, domain.AdTypeSponsoredProducts).
			Return(nil, nil)

		_, err := service.RecordValue(context.Background(), policy, RecordInput{
			Metric:     "viewability",
			EntityID:   "KW001",
			EntityType: domain.EntityTypeKeyword,
			AdTypeID:   domain.AdTypeSponsoredProducts,
			StartDate:  startDate,
			EndDate:    endDate,
			RawValue:   "0.5",
		})

		require.Error(t, err)
		assert.True(t, domain.IsUnknownMetric(err))
	})

	t.Run("percentual é armazenado como fração", func(t *testing.T) {
		def := &domain.MetricDefinition{
			ID:         2,
			Name:       "clickThroughRate",
			EntityType: domain.EntityTypeCampaign,
			AdTypeID:   domain.AdTypeSponsoredBrands,
			ValueType:  domain.ValueTypePercentage,
		}

		mockDefinitions.EXPECT().
			GetByNameAndEntityType("clickThroughRate", domain.EntityTypeCampaign, domain.AdTypeSponsoredBrands).
			Return(def, nil)

		mockStatistics.EXPECT().
			FindOrCreate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *domain.StatisticRecord) (*domain.StatisticRecord, error) {
				record.ID = "stat-2"
				return record, nil
			})

		mockStatistics.EXPECT().
			UpsertMetricValue(gomock.Any(), "stat-2", def, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ *domain.MetricDefinition, value domain.MetricValue) (*domain.MetricRecord, error) {
				assert.InDelta(t, 0.0325, value.Numeric, 1e-9)
				return &domain.MetricRecord{ID: "rec-2", Value: value}, nil
			})

		_, err := service.RecordValue(context.Background(), policy, RecordInput{
			Metric:     "clickThroughRate",
			EntityID:   "CAMP002",
			EntityType: domain.EntityTypeCampaign,
			AdTypeID:   domain.AdTypeSponsoredBrands,
			StartDate:  startDate,
			EndDate:    endDate,
			RawValue:   "3.25%",
		})

		require.NoError(t, err)
	})

	t.Run("valor bruto ilegível não chega ao repositório", func(t *testing.T) {
		def := &domain.MetricDefinition{
			ID:         3,
			Name:       "cost",
			EntityType: domain.EntityTypeAdGroup,
			AdTypeID:   domain.AdTypeSponsoredProducts,
			ValueType:  domain.ValueTypeCurrency,
		}

		mockDefinitions.EXPECT().
			GetByNameAndEntityType("cost", domain.EntityTypeAdGroup, domain.AdTypeSponsoredProducts).
			Return(def, nil)

		_, err := service.RecordValue(context.Background(), policy, RecordInput{
			Metric:     "cost",
			EntityID:   "AG001",
			EntityType: domain.EntityTypeAdGroup,
			AdTypeID:   domain.AdTypeSponsoredProducts,
			StartDate:  startDate,
			EndDate:    endDate,
			RawValue:   "abc",
		})

		require.Error(t, err)
	})
}

func TestService_LookupDefinition_Memoization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDefinitions := mocks.NewMockMetricDefinitionRepository(ctrl)
	mockStatistics := mocks.NewMockStatisticRepository(ctrl)
	service := newTestService(mockDefinitions, mockStatistics)

	def := &domain.MetricDefinition{
		ID:         7,
		Name:       "impressions",
		EntityType: domain.EntityTypeCampaign,
		AdTypeID:   domain.AdTypeSponsoredProducts,
		ValueType:  domain.ValueTypeInteger,
	}

	// O repositório só é consultado uma vez dentro da janela do TTL
	mockDefinitions.EXPECT().
		GetByNameAndEntityType("impressions", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts).
		Return(def, nil).
		Times(1)

	for i := 0; i < 3; i++ {
		found, err := service.LookupDefinition("impressions", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts)
		require.NoError(t, err)
		assert.Equal(t, def, found)
	}
}

func TestService_LookupDefinition_MissNotMemoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDefinitions := mocks.NewMockMetricDefinitionRepository(ctrl)
	mockStatistics := mocks.NewMockStatisticRepository(ctrl)
	service := newTestService(mockDefinitions, mockStatistics)

	def := &domain.MetricDefinition{
		ID:         8,
		Name:       "purchases7d",
		EntityType: domain.EntityTypeCampaign,
		AdTypeID:   domain.AdTypeSponsoredProducts,
		ValueType:  domain.ValueTypeInteger,
	}

	gomock.InOrder(
		mockDefinitions.EXPECT().
			GetByNameAndEntityType("purchases7d", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts).
			Return(nil, nil),
		mockDefinitions.EXPECT().
			GetByNameAndEntityType("purchases7d", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts).
			Return(def, nil),
	)

	_, err := service.LookupDefinition("purchases7d", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts)
	require.Error(t, err)
	assert.True(t, domain.IsUnknownMetric(err))

	// Um catálogo recém-criado aparece sem reinício do serviço
	found, err := service.LookupDefinition("purchases7d", domain.EntityTypeCampaign, domain.AdTypeSponsoredProducts)
	require.NoError(t, err)
	assert.Equal(t, def, found)
}
