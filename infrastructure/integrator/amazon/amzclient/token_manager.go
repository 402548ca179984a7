package amzclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/internal/config"
)

// tokenExpiryMargin é a folga antes da expiração a partir da qual o token é
// renovado proativamente
const tokenExpiryMargin = 60 * time.Second

// TokenManager gerencia o token de acesso LWA da Amazon Ads API. O token é
// renovado por chamada quando necessário e mantido em cache até a expiração
// declarada pela API.
type TokenManager struct {
	cfg               *config.Config
	TokenRefreshMutex sync.Mutex
	httpClient        *http.Client

	accessToken string
	expiresAt   time.Time
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken devolve um token válido, renovando antes se necessário
func (tm *TokenManager) AccessToken() (string, error) {
	if err := tm.EnsureValidToken(); err != nil {
		return "", err
	}

	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()
	return tm.accessToken, nil
}

// EnsureValidToken verifica se o token atual é válido e o renova se estiver
// ausente ou próximo de expirar
func (tm *TokenManager) EnsureValidToken() error {
	tm.TokenRefreshMutex.Lock()
	valid := tm.accessToken != "" && time.Until(tm.expiresAt) > tokenExpiryMargin
	tm.TokenRefreshMutex.Unlock()

	if valid {
		return nil
	}

	return tm.RefreshToken()
}

// RefreshToken troca o refresh token por um novo token de acesso LWA
func (tm *TokenManager) RefreshToken() error {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	// Verificar novamente: outra goroutine pode ter renovado enquanto
	// aguardávamos o lock
	if tm.accessToken != "" && time.Until(tm.expiresAt) > tokenExpiryMargin {
		return nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", tm.cfg.Amazon.RefreshToken)
	form.Set("client_id", tm.cfg.Amazon.ClientID)
	form.Set("client_secret", tm.cfg.Amazon.ClientSecret)

	req, err := http.NewRequest(http.MethodPost, tm.cfg.Amazon.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição de token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao renovar token LWA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("renovação de token LWA falhou com status: %s", resp.Status)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	tm.accessToken = token.AccessToken
	tm.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	logrus.WithFields(logrus.Fields{
		"expires_at": tm.expiresAt.Format(time.RFC3339),
	}).Info("Token LWA renovado com sucesso")

	return nil
}
