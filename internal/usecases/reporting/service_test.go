package reporting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/amzclient"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	amazonmocks "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/mocks"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/recording"
	"go.uber.org/mock/gomock"
)

// stubRecorder guarda as gravações em memória para inspeção
type stubRecorder struct {
	mu       sync.Mutex
	recorded []recording.RecordInput
	catalog  map[string]*domain.MetricDefinition
}

func newStubRecorder(defs ...*domain.MetricDefinition) *stubRecorder {
	catalog := make(map[string]*domain.MetricDefinition)
	for _, def := range defs {
		catalog[def.Name] = def
	}
	return &stubRecorder{catalog: catalog}
}

func (r *stubRecorder) RecordValue(_ context.Context, _ domain.CompanyPolicy, input recording.RecordInput) (*domain.MetricRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, input)
	return &domain.MetricRecord{}, nil
}

func (r *stubRecorder) FormatValue(_ *domain.MetricDefinition, value domain.MetricValue) string {
	return value.Format()
}

func (r *stubRecorder) LookupDefinition(name string, entityType domain.EntityType, _ domain.AdTypeID) (*domain.MetricDefinition, error) {
	def, ok := r.catalog[name]
	if !ok {
		return nil, &domain.UnknownMetricError{Metric: name, EntityType: entityType}
	}
	return def, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ReportSync: config.ReportSync{
			MaxRetries:         3,
			InitialBackoffSecs: 5,
			IngestionBatchSize: 100,
		},
	}
}

func newTestService(client *amazonmocks.MockClient, jobs *mocks.MockReportJobRepository, recorder recording.Recorder) (*Service, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	service := &Service{
		cfg:      testConfig(),
		client:   client,
		jobs:     jobs,
		recorder: recorder,
		sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
	}
	return service, sleeps
}

func TestService_GenerateReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)
	service, sleeps := newTestService(mockClient, mockJobs, newStubRecorder())

	policy := domain.CompanyPolicy{CompanyID: 42}
	input := GenerateInput{
		ReportType: "campaigns",
		AdTypeID:   domain.AdTypeSponsoredProducts,
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	mockJobs.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(job *domain.ReportJob) (*domain.ReportJob, error) {
			job.ID = "job-1"
			return job, nil
		})

	mockClient.EXPECT().
		RequestReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request amazondomain.ReportRequest) (string, error) {
			assert.Equal(t, "spCampaigns", request.Configuration.ReportTypeID)
			assert.Equal(t, "SPONSORED_PRODUCTS", request.Configuration.AdProduct)
			assert.Equal(t, "GZIP_JSON", request.Configuration.Format)
			return "ext-report-1", nil
		})

	mockJobs.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(job *domain.ReportJob) error {
			assert.Equal(t, domain.ReportStatusPending, job.Status)
			require.NotNil(t, job.ReportID)
			assert.Equal(t, "ext-report-1", *job.ReportID)
			return nil
		})

	job, err := service.GenerateReport(context.Background(), policy, input)

	require.NoError(t, err)
	assert.Equal(t, 1, job.Attempts)
	assert.Empty(t, *sleeps)
}

func TestService_GenerateReport_DuplicateShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)
	service, sleeps := newTestService(mockClient, mockJobs, newStubRecorder())

	mockJobs.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(job *domain.ReportJob) (*domain.ReportJob, error) {
			job.ID = "job-2"
			return job, nil
		})

	// A recusa por duplicidade reutiliza o relatório já em andamento
	mockClient.EXPECT().
		RequestReport(gomock.Any(), gomock.Any()).
		Return("", &amzclient.ErrDuplicateReport{ReportID: "ext-dup-7"})

	mockJobs.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(job *domain.ReportJob) error {
			assert.Equal(t, domain.ReportStatusPending, job.Status)
			assert.Equal(t, "ext-dup-7", *job.ReportID)
			return nil
		})

	job, err := service.GenerateReport(context.Background(), domain.CompanyPolicy{CompanyID: 42}, GenerateInput{
		ReportType: "campaigns",
		AdTypeID:   domain.AdTypeSponsoredProducts,
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "ext-dup-7", *job.ReportID)
	assert.Empty(t, *sleeps)
}

func TestService_GenerateReport_RetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)
	service, sleeps := newTestService(mockClient, mockJobs, newStubRecorder())

	mockJobs.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(job *domain.ReportJob) (*domain.ReportJob, error) {
			job.ID = "job-3"
			return job, nil
		})

	mockClient.EXPECT().
		RequestReport(gomock.Any(), gomock.Any()).
		Return("", &domain.ExternalSyncError{StatusCode: 500, Body: "throttled"}).
		Times(3)

	mockJobs.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(job *domain.ReportJob) error {
			assert.Equal(t, domain.ReportStatusFailed, job.Status)
			require.NotNil(t, job.ErrorMessage)
			return nil
		})

	job, err := service.GenerateReport(context.Background(), domain.CompanyPolicy{CompanyID: 42}, GenerateInput{
		ReportType: "campaigns",
		AdTypeID:   domain.AdTypeSponsoredProducts,
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})

	require.Error(t, err)
	var genErr *domain.ReportGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 3, genErr.Attempts)
	assert.Equal(t, 3, job.Attempts)

	// Backoff exponencial: 5s e depois 10s entre as tentativas
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, *sleeps)
}

func TestService_GenerateReport_UnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)
	service, _ := newTestService(mockClient, mockJobs, newStubRecorder())

	_, err := service.GenerateReport(context.Background(), domain.CompanyPolicy{CompanyID: 42}, GenerateInput{
		ReportType: "invoices",
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestService_GetReport_CompletedIngestsRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)

	recorder := newStubRecorder(
		&domain.MetricDefinition{ID: 1, Name: "clicks", EntityType: domain.EntityTypeCampaign, ValueType: domain.ValueTypeInteger},
		&domain.MetricDefinition{ID: 2, Name: "cost", EntityType: domain.EntityTypeCampaign, ValueType: domain.ValueTypeCurrency},
		&domain.MetricDefinition{ID: 3, Name: "clickThroughRate", EntityType: domain.EntityTypeCampaign, ValueType: domain.ValueTypePercentage},
	)
	service, _ := newTestService(mockClient, mockJobs, recorder)

	reportID := "ext-report-9"
	job := &domain.ReportJob{
		ID:         "job-9",
		CompanyID:  42,
		ReportID:   &reportID,
		ReportType: "campaigns",
		AdTypeID:   domain.AdTypeSponsoredProducts,
		Status:     domain.ReportStatusPending,
	}

	mockJobs.EXPECT().GetByID("job-9").Return(job, nil)

	mockClient.EXPECT().
		GetReport(gomock.Any(), reportID).
		Return(&amazondomain.ReportResponse{
			ReportID: reportID,
			Status:   amazondomain.ReportStatusCompleted,
			URL:      "https://bucket/report.json.gz",
		}, nil)

	mockClient.EXPECT().
		DownloadReport(gomock.Any(), "https://bucket/report.json.gz").
		Return([]amazondomain.ReportRow{
			{
				"campaignId":       "EXT-C1",
				"date":             "2025-03-01",
				"clicks":           float64(120),
				"cost":             35.5,
				"clickThroughRate": 0.0325,
				"topOfSearch":      1.0, // coluna fora do mapeamento
			},
		}, nil)

	mockJobs.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(updated *domain.ReportJob) error {
			assert.Equal(t, domain.ReportStatusCompleted, updated.Status)
			require.NotNil(t, updated.ProcessedAt)
			return nil
		})

	result, err := service.GetReport(context.Background(), domain.CompanyPolicy{CompanyID: 42}, "job-9")

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusCompleted, result.Status)

	require.Len(t, recorder.recorded, 3)
	byMetric := make(map[string]recording.RecordInput)
	for _, input := range recorder.recorded {
		byMetric[input.Metric] = input
		assert.Equal(t, "EXT-C1", input.EntityID)
		require.NotNil(t, input.ReportID)
		assert.Equal(t, "job-9", *input.ReportID)
	}
	assert.Equal(t, "120", byMetric["clicks"].RawValue)
	assert.Equal(t, "35.5", byMetric["cost"].RawValue)
	// A fração do relatório volta para a forma percentual antes da gravação
	assert.Equal(t, "3.25", byMetric["clickThroughRate"].RawValue)
}

func TestService_GetReport_TransientPollingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)
	service, _ := newTestService(mockClient, mockJobs, newStubRecorder())

	reportID := "ext-report-10"
	job := &domain.ReportJob{
		ID:         "job-10",
		CompanyID:  42,
		ReportID:   &reportID,
		ReportType: "campaigns",
		Status:     domain.ReportStatusPending,
	}

	mockJobs.EXPECT().GetByID("job-10").Return(job, nil)
	mockClient.EXPECT().
		GetReport(gomock.Any(), reportID).
		Return(nil, &domain.ExternalSyncError{StatusCode: 503, Body: "unavailable"})

	mockJobs.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(updated *domain.ReportJob) error {
			// Estado transitório: o job continua elegível para polling
			assert.Equal(t, domain.ReportStatusError, updated.Status)
			assert.False(t, updated.Finished())
			return nil
		})

	_, err := service.GetReport(context.Background(), domain.CompanyPolicy{CompanyID: 42}, "job-10")
	require.Error(t, err)
}

func TestService_GetReport_ScopedByCompany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := amazonmocks.NewMockClient(ctrl)
	mockJobs := mocks.NewMockReportJobRepository(ctrl)
	service, _ := newTestService(mockClient, mockJobs, newStubRecorder())

	mockJobs.EXPECT().GetByID("job-11").Return(&domain.ReportJob{ID: "job-11", CompanyID: 7}, nil)

	_, err := service.GetReport(context.Background(), domain.CompanyPolicy{CompanyID: 42}, "job-11")
	require.Error(t, err)
}
