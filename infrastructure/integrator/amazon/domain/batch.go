package amazondomain

import "encoding/json"

// BatchSuccessItem é um elemento do array success de uma resposta em lote.
// O campo Index referencia a posição do elemento na requisição original e é
// a chave de correlação de volta para a linha local.
type BatchSuccessItem struct {
	Index      int    `json:"index"`
	CampaignID string `json:"campaignId,omitempty"`
	AdGroupID  string `json:"adGroupId,omitempty"`
	KeywordID  string `json:"keywordId,omitempty"`
	AdID       string `json:"adId,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
}

// ExternalID devolve o ID externo atribuído, independente do tipo de entidade
func (i BatchSuccessItem) ExternalID() string {
	for _, id := range []string{i.CampaignID, i.AdGroupID, i.KeywordID, i.AdID, i.TargetID} {
		if id != "" {
			return id
		}
	}
	return ""
}

// BatchErrorItem é um elemento do array error de uma resposta em lote
type BatchErrorItem struct {
	Index       int    `json:"index"`
	Code        string `json:"code,omitempty"`
	ErrorType   string `json:"errorType,omitempty"`
	Description string `json:"description,omitempty"`
}

// Message devolve a mensagem de erro mais descritiva disponível
func (i BatchErrorItem) Message() string {
	if i.Description != "" {
		return i.Description
	}
	if i.ErrorType != "" {
		return i.ErrorType
	}
	return i.Code
}

// BatchOutcome agrupa os desfechos paralelos de uma chamada em lote
type BatchOutcome struct {
	Success []BatchSuccessItem `json:"success"`
	Error   []BatchErrorItem   `json:"error"`
}

// BatchResponse é o envelope da resposta em lote da Amazon Ads API: o
// desfecho fica aninhado sob a chave do tipo de entidade da chamada
// (campaigns, adGroups, keywords, ...).
type BatchResponse map[string]BatchOutcome

// Outcome devolve o primeiro desfecho presente no envelope
func (r BatchResponse) Outcome() BatchOutcome {
	for _, outcome := range r {
		return outcome
	}
	return BatchOutcome{}
}

// ParseBatchResponse decodifica o corpo de uma resposta em lote
func ParseBatchResponse(body []byte) (BatchOutcome, error) {
	var response BatchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return BatchOutcome{}, err
	}
	return response.Outcome(), nil
}
