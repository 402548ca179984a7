package domain

import (
	"encoding/json"
	"time"
)

// DispatchStatus é o estado de uma tentativa de despacho para a API externa
type DispatchStatus string

const (
	DispatchStatusProcessing DispatchStatus = "processing"
	DispatchStatusCompleted  DispatchStatus = "completed"
	DispatchStatusFailed     DispatchStatus = "failed"
)

// SyncDispatchLog registra uma chamada de saída para a API externa, com o
// payload completo para auditoria e replay. Uma linha por tentativa,
// nunca mutada após a conclusão.
type SyncDispatchLog struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Status    DispatchStatus  `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// SyncResponseLog registra o desfecho de uma entidade afetada por um
// despacho. Chamadas em lote geram múltiplas linhas referenciando o mesmo
// despacho. ErrorMessage preenchido ou HTTPStatus >= 400 marca a
// sincronização da entidade como falha sem abortar as irmãs do lote.
type SyncResponseLog struct {
	ID           string          `json:"id"`
	DispatchID   string          `json:"dispatch_id"`
	HTTPStatus   int             `json:"http_status"`
	ResponseData json.RawMessage `json:"response_data"`
	ErrorMessage *string         `json:"error_message"`
	EntityID     string          `json:"entity_id"`
	EntityType   EntityType      `json:"entity_type"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Failed indica se o desfecho registrado representa uma falha de sincronização
func (r *SyncResponseLog) Failed() bool {
	return r.ErrorMessage != nil || r.HTTPStatus >= 400
}

// SyncSuccess é o desfecho positivo de uma entidade dentro de um lote
type SyncSuccess struct {
	LocalID    string `json:"local_id"`
	ExternalID string `json:"external_id"`
}

// SyncFailure é o desfecho negativo de uma entidade dentro de um lote
type SyncFailure struct {
	LocalID string `json:"local_id"`
	Error   string `json:"error"`
}

// BatchResult é o resultado consolidado de um despacho em lote: os desfechos
// individuais nunca bloqueiam uns aos outros.
type BatchResult struct {
	Succeeded []SyncSuccess `json:"succeeded"`
	Failed    []SyncFailure `json:"failed"`
}
