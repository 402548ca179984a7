package amzclient

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

const reportingEndpoint = "/reporting/reports"

// ErrDuplicateReport sinaliza que a API recusou o pedido por já existir um
// relatório idêntico em andamento. ReportID carrega o ID a ser reutilizado.
type ErrDuplicateReport struct {
	ReportID string
}

func (e *ErrDuplicateReport) Error() string {
	return fmt.Sprintf("relatório duplicado, reutilizar ID externo %s", e.ReportID)
}

// RequestReport submete um pedido de geração assíncrona de relatório e
// devolve o ID externo atribuído. Uma resposta 425 com o padrão de
// duplicidade vira ErrDuplicateReport para o chamador curto-circuitar.
func (c *AmazonClient) RequestReport(ctx context.Context, request amazondomain.ReportRequest) (string, error) {
	body, err := c.SendRequest(ctx, reportingEndpoint, request, http.MethodPost, "application/vnd.createasyncreportrequest.v3+json")
	if err != nil {
		var syncErr *domain.ExternalSyncError
		if errors.As(err, &syncErr) && syncErr.StatusCode == http.StatusTooEarly {
			if duplicateID := amazondomain.DuplicateReportID(syncErr.Body); duplicateID != "" {
				logrus.WithField("report_id", duplicateID).Info("Relatório duplicado detectado, reutilizando ID externo")
				return "", &ErrDuplicateReport{ReportID: duplicateID}
			}
		}
		return "", err
	}

	var response amazondomain.ReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta do pedido de relatório: %w", err)
	}

	if response.ReportID == "" {
		return "", fmt.Errorf("pedido de relatório aceito sem ID externo")
	}

	return response.ReportID, nil
}

// GetReport consulta o status de geração de um relatório
func (c *AmazonClient) GetReport(ctx context.Context, reportID string) (*amazondomain.ReportResponse, error) {
	body, err := c.SendRequest(ctx, fmt.Sprintf("%s/%s", reportingEndpoint, reportID), nil, http.MethodGet, "")
	if err != nil {
		return nil, err
	}

	var response amazondomain.ReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar status do relatório: %w", err)
	}

	return &response, nil
}

// DownloadReport baixa o arquivo do relatório da URL pré-assinada devolvida
// pelo polling, descomprime o gzip e decodifica as linhas JSON. A URL é
// pré-assinada, então a chamada não leva cabeçalhos de autenticação.
func (c *AmazonClient) DownloadReport(ctx context.Context, downloadURL string) ([]amazondomain.ReportRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição de download: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar relatório: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download do relatório falhou com status: %s", resp.Status)
	}

	gzipReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao descomprimir relatório: %w", err)
	}
	defer gzipReader.Close()

	var rows []amazondomain.ReportRow
	if err := json.NewDecoder(gzipReader).Decode(&rows); err != nil {
		return nil, fmt.Errorf("erro ao decodificar linhas do relatório: %w", err)
	}

	return rows, nil
}
