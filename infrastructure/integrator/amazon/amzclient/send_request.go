package amzclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// SendRequest executa uma chamada autenticada contra a Amazon Ads API.
// O token LWA é validado antes de cada chamada; respostas fora da faixa 2xx
// viram ExternalSyncError com o corpo bruto preservado para o log de
// sincronização.
func (c *AmazonClient) SendRequest(ctx context.Context, endpoint string, payload any, method, contentType string) ([]byte, error) {
	token, err := c.TokenManager.AccessToken()
	if err != nil {
		return nil, &domain.ExternalSyncError{Err: fmt.Errorf("erro ao obter token de acesso: %w", err)}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Cfg.Amazon.BaseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Amazon-Advertising-API-ClientId", c.Cfg.Amazon.ClientID)
	if c.Cfg.Amazon.ProfileID != "" {
		req.Header.Set("Amazon-Advertising-API-Scope", c.Cfg.Amazon.ProfileID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"method":   method,
			"error":    err.Error(),
		}).Error("amazon: request to ads API failed")
		return nil, &domain.ExternalSyncError{Err: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ExternalSyncError{Err: fmt.Errorf("erro ao ler resposta: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"method":   method,
			"status":   resp.StatusCode,
		}).Warn("amazon: ads API returned non-2xx status")

		return nil, &domain.ExternalSyncError{
			StatusCode: resp.StatusCode,
			Body:       string(responseBody),
		}
	}

	return responseBody, nil
}
