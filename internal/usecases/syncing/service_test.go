package syncing

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeRunner executa o bloco direto, sem banco
type fakeRunner struct{}

func (fakeRunner) RunInTransaction(_ context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

type fakeBatchCaller struct {
	endpoint string
	payload  any
	body     []byte
	outcome  amazondomain.BatchOutcome
	err      error
}

func (f *fakeBatchCaller) CreateBatch(_ context.Context, endpoint string, payload any) ([]byte, amazondomain.BatchOutcome, error) {
	f.endpoint = endpoint
	f.payload = payload
	return f.body, f.outcome, f.err
}

func testEntities() []domain.SyncEntity {
	return []domain.SyncEntity{
		{LocalID: "KW001", EntityType: domain.EntityTypeKeyword},
		{LocalID: "KW002", EntityType: domain.EntityTypeKeyword},
		{LocalID: "KW003", EntityType: domain.EntityTypeKeyword},
	}
}

func TestService_DispatchAndLog_PartialBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncLogs := mocks.NewMockSyncLogRepository(ctrl)
	mockEntities := mocks.NewMockEntityRepository(ctrl)

	caller := &fakeBatchCaller{
		body: []byte(`{}`),
		outcome: amazondomain.BatchOutcome{
			Success: []amazondomain.BatchSuccessItem{
				{Index: 0, KeywordID: "EXT-1"},
				{Index: 2, KeywordID: "EXT-3"},
			},
			Error: []amazondomain.BatchErrorItem{
				{Index: 1, Code: "DUPLICATE_VALUE", Description: "keyword already exists"},
			},
		},
	}

	service := NewService(caller, fakeRunner{}, mockSyncLogs, mockEntities)

	dispatch := &domain.SyncDispatchLog{ID: "disp-1", Status: domain.DispatchStatusProcessing}
	mockSyncLogs.EXPECT().
		CreateDispatch("keyword.sync", gomock.Any()).
		Return(dispatch, nil)

	// Uma linha de resposta por entidade do lote, sucesso ou falha
	responses := make([]*domain.SyncResponseLog, 0, 3)
	mockSyncLogs.EXPECT().
		CreateResponse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *sql.Tx, response *domain.SyncResponseLog) (*domain.SyncResponseLog, error) {
			responses = append(responses, response)
			return response, nil
		}).
		Times(3)

	mockEntities.EXPECT().
		UpdateExternalID(gomock.Any(), domain.EntityTypeKeyword, "KW001", "EXT-1").
		Return(nil)
	mockEntities.EXPECT().
		UpdateExternalID(gomock.Any(), domain.EntityTypeKeyword, "KW003", "EXT-3").
		Return(nil)

	mockSyncLogs.EXPECT().
		UpdateDispatchStatus("disp-1", domain.DispatchStatusCompleted).
		Return(nil)

	result, err := service.DispatchAndLog(context.Background(), "/sp/keywords", "keyword.sync", map[string]any{}, testEntities())

	// Falha parcial dentro do lote não é erro do despacho
	require.NoError(t, err)
	require.Len(t, result.Succeeded, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "KW002", result.Failed[0].LocalID)
	assert.Equal(t, "keyword already exists", result.Failed[0].Error)

	failedResponses := 0
	for _, response := range responses {
		if response.Failed() {
			failedResponses++
		}
	}
	assert.Equal(t, 1, failedResponses)
}

func TestService_DispatchAndLog_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncLogs := mocks.NewMockSyncLogRepository(ctrl)
	mockEntities := mocks.NewMockEntityRepository(ctrl)

	callErr := &domain.ExternalSyncError{StatusCode: 500, Body: "internal error"}
	caller := &fakeBatchCaller{err: callErr}

	service := NewService(caller, fakeRunner{}, mockSyncLogs, mockEntities)

	dispatch := &domain.SyncDispatchLog{ID: "disp-2", Status: domain.DispatchStatusProcessing}
	mockSyncLogs.EXPECT().
		CreateDispatch("keyword.sync", gomock.Any()).
		Return(dispatch, nil)

	// A falha é registrada para todas as entidades; nenhum ID externo é gravado
	mockSyncLogs.EXPECT().
		CreateResponse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *sql.Tx, response *domain.SyncResponseLog) (*domain.SyncResponseLog, error) {
			assert.Equal(t, 500, response.HTTPStatus)
			assert.True(t, response.Failed())
			return response, nil
		}).
		Times(3)

	mockSyncLogs.EXPECT().
		UpdateDispatchStatus("disp-2", domain.DispatchStatusFailed).
		Return(nil)

	_, err := service.DispatchAndLog(context.Background(), "/sp/keywords", "keyword.sync", map[string]any{}, testEntities())

	require.Error(t, err)
	assert.True(t, domain.IsExternalSync(err))
}

func TestService_SyncCampaigns_BuildsIndexedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncLogs := mocks.NewMockSyncLogRepository(ctrl)
	mockEntities := mocks.NewMockEntityRepository(ctrl)

	caller := &fakeBatchCaller{
		body: []byte(`{}`),
		outcome: amazondomain.BatchOutcome{
			Success: []amazondomain.BatchSuccessItem{{Index: 0, CampaignID: "C-EXT-1"}},
		},
	}

	service := NewService(caller, fakeRunner{}, mockSyncLogs, mockEntities)

	mockSyncLogs.EXPECT().
		CreateDispatch("campaign.sync", gomock.Any()).
		Return(&domain.SyncDispatchLog{ID: "disp-3"}, nil)
	mockSyncLogs.EXPECT().
		CreateResponse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *sql.Tx, response *domain.SyncResponseLog) (*domain.SyncResponseLog, error) {
			return response, nil
		})
	mockEntities.EXPECT().
		UpdateExternalID(gomock.Any(), domain.EntityTypeCampaign, "CAMP001", "C-EXT-1").
		Return(nil)
	mockSyncLogs.EXPECT().
		UpdateDispatchStatus("disp-3", domain.DispatchStatusCompleted).
		Return(nil)

	result, err := service.SyncCampaigns(context.Background(), []*domain.Campaign{
		{
			ID:       "CAMP001",
			AdTypeID: domain.AdTypeSponsoredBrands,
			Name:     "Lançamento outono",
			State:    "ENABLED",
		},
	})

	require.NoError(t, err)
	require.Len(t, result.Succeeded, 1)
	assert.Equal(t, "C-EXT-1", result.Succeeded[0].ExternalID)
	assert.Equal(t, "/sb/campaigns", caller.endpoint)
}

func TestService_SyncCampaigns_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncLogs := mocks.NewMockSyncLogRepository(ctrl)
	mockEntities := mocks.NewMockEntityRepository(ctrl)
	service := NewService(&fakeBatchCaller{}, fakeRunner{}, mockSyncLogs, mockEntities)

	result, err := service.SyncCampaigns(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
}
