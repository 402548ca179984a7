package amzclient

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

func testConfig(baseURL, tokenURL string) *config.Config {
	return &config.Config{
		Amazon: config.Amazon{
			BaseURL:      baseURL,
			TokenURL:     tokenURL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "refresh-token",
			ProfileID:    "profile-1",
		},
	}
}

func tokenServer(t *testing.T, refreshCount *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "refresh-token", r.Form.Get("refresh_token"))

		*refreshCount++
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "access-token",
			TokenType:   "bearer",
			ExpiresIn:   3600,
		})
	}))
}

func TestTokenManagerRefreshesOnceWithinExpiry(t *testing.T) {
	refreshCount := 0
	server := tokenServer(t, &refreshCount)
	defer server.Close()

	tm := NewTokenManager(testConfig("", server.URL))

	token, err := tm.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "access-token", token)

	// O token cacheado é reutilizado até a margem de expiração
	_, err = tm.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, 1, refreshCount)
}

func TestTokenManagerRefreshFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tm := NewTokenManager(testConfig("", server.URL))

	_, err := tm.AccessToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renovação de token LWA falhou")
}

func TestSendRequestSetsAuthHeaders(t *testing.T) {
	refreshCount := 0
	auth := tokenServer(t, &refreshCount)
	defer auth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "client-id", r.Header.Get("Amazon-Advertising-API-ClientId"))
		assert.Equal(t, "profile-1", r.Header.Get("Amazon-Advertising-API-Scope"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer api.Close()

	cfg := testConfig(api.URL, auth.URL)
	client := NewClient(cfg, NewTokenManager(cfg))

	body, err := client.SendRequest(context.Background(), "/sp/campaigns", nil, http.MethodPost, "application/json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestSendRequestNon2xxBecomesExternalSyncError(t *testing.T) {
	refreshCount := 0
	auth := tokenServer(t, &refreshCount)
	defer auth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"entidade inválida"}`))
	}))
	defer api.Close()

	cfg := testConfig(api.URL, auth.URL)
	client := NewClient(cfg, NewTokenManager(cfg))

	_, err := client.SendRequest(context.Background(), "/sp/campaigns", nil, http.MethodPost, "application/json")
	require.Error(t, err)

	var syncErr *domain.ExternalSyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, http.StatusUnprocessableEntity, syncErr.StatusCode)
	assert.Contains(t, syncErr.Body, "entidade inválida")
}

func TestRequestReportReturnsExternalID(t *testing.T) {
	refreshCount := 0
	auth := tokenServer(t, &refreshCount)
	defer auth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, reportingEndpoint, r.URL.Path)
		json.NewEncoder(w).Encode(amazondomain.ReportResponse{
			ReportID: "rep-123",
			Status:   amazondomain.ReportStatusProcessing,
		})
	}))
	defer api.Close()

	cfg := testConfig(api.URL, auth.URL)
	client := NewClient(cfg, NewTokenManager(cfg))

	reportID, err := client.RequestReport(context.Background(), amazondomain.ReportRequest{Name: "performance"})
	require.NoError(t, err)
	assert.Equal(t, "rep-123", reportID)
}

func TestRequestReportDuplicateShortCircuits(t *testing.T) {
	refreshCount := 0
	auth := tokenServer(t, &refreshCount)
	defer auth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooEarly)
		w.Write([]byte(`{"details":"Report is duplicate of : 0a9f5c3e-77aa-4c21-b5d1-1f2e3d4c5b6a"}`))
	}))
	defer api.Close()

	cfg := testConfig(api.URL, auth.URL)
	client := NewClient(cfg, NewTokenManager(cfg))

	_, err := client.RequestReport(context.Background(), amazondomain.ReportRequest{Name: "performance"})
	require.Error(t, err)

	var duplicate *ErrDuplicateReport
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "0a9f5c3e-77aa-4c21-b5d1-1f2e3d4c5b6a", duplicate.ReportID)
}

func TestRequestReport425WithoutDuplicatePatternStaysError(t *testing.T) {
	refreshCount := 0
	auth := tokenServer(t, &refreshCount)
	defer auth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooEarly)
		w.Write([]byte(`{"message":"too early"}`))
	}))
	defer api.Close()

	cfg := testConfig(api.URL, auth.URL)
	client := NewClient(cfg, NewTokenManager(cfg))

	_, err := client.RequestReport(context.Background(), amazondomain.ReportRequest{Name: "performance"})
	require.Error(t, err)

	var duplicate *ErrDuplicateReport
	assert.False(t, errors.As(err, &duplicate))
}

func TestDownloadReportDecodesGzip(t *testing.T) {
	rows := []amazondomain.ReportRow{
		{"campaignId": "123", "clicks": float64(10)},
		{"campaignId": "456", "clicks": float64(3)},
	}

	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A URL é pré-assinada: nenhum cabeçalho de autenticação é esperado
		assert.Empty(t, r.Header.Get("Authorization"))

		gz := gzip.NewWriter(w)
		require.NoError(t, json.NewEncoder(gz).Encode(rows))
		require.NoError(t, gz.Close())
	}))
	defer files.Close()

	cfg := testConfig("", "")
	client := NewClient(cfg, NewTokenManager(cfg))

	decoded, err := client.DownloadReport(context.Background(), files.URL+"/report.gz")
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "123", decoded[0]["campaignId"])
	assert.Equal(t, float64(3), decoded[1]["clicks"])
}

func TestDownloadReportNon200(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer files.Close()

	cfg := testConfig("", "")
	client := NewClient(cfg, NewTokenManager(cfg))

	_, err := client.DownloadReport(context.Background(), files.URL+"/report.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download do relatório falhou")
}
