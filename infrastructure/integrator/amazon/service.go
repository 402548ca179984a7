package amazon

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/amzclient"
	"github.com/vfg2006/ads-performance-api/internal/config"
)

// AmazonIntegrator é a fachada do núcleo sobre a Amazon Ads API: chamadas em
// lote de entidades e o ciclo de relatórios assíncronos.
type AmazonIntegrator struct {
	cfg    *config.Config
	Client amzclient.Client
}

func New(cfg *config.Config, client amzclient.Client) *AmazonIntegrator {
	return &AmazonIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// CreateBatch envia uma criação em lote para o endpoint informado e devolve
// o corpo bruto (para o ledger) junto com o desfecho por elemento.
func (s *AmazonIntegrator) CreateBatch(ctx context.Context, endpoint string, payload any) ([]byte, amazondomain.BatchOutcome, error) {
	body, err := s.Client.SendRequest(ctx, endpoint, payload, http.MethodPost, "application/json")
	if err != nil {
		return nil, amazondomain.BatchOutcome{}, err
	}

	outcome, err := amazondomain.ParseBatchResponse(body)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"error":    err.Error(),
		}).Error("amazon: failed to parse batch response")
		return body, amazondomain.BatchOutcome{}, err
	}

	return body, outcome, nil
}

// RequestReport submete um pedido de relatório assíncrono
func (s *AmazonIntegrator) RequestReport(ctx context.Context, request amazondomain.ReportRequest) (string, error) {
	return s.Client.RequestReport(ctx, request)
}

// GetReport consulta o status de um relatório em geração
func (s *AmazonIntegrator) GetReport(ctx context.Context, reportID string) (*amazondomain.ReportResponse, error) {
	return s.Client.GetReport(ctx, reportID)
}

// DownloadReport baixa e decodifica o resultado de um relatório completo
func (s *AmazonIntegrator) DownloadReport(ctx context.Context, downloadURL string) ([]amazondomain.ReportRow, error) {
	return s.Client.DownloadReport(ctx, downloadURL)
}
