package amzclient

import (
	"context"
	"net/http"
	"time"

	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/internal/config"
)

type Client interface {
	SendRequest(ctx context.Context, endpoint string, payload any, method, contentType string) ([]byte, error)
	RequestReport(ctx context.Context, request amazondomain.ReportRequest) (string, error)
	GetReport(ctx context.Context, reportID string) (*amazondomain.ReportResponse, error)
	DownloadReport(ctx context.Context, downloadURL string) ([]amazondomain.ReportRow, error)
}

type AmazonClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	httpClient   *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &AmazonClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}
