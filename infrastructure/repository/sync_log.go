package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/utils"
)

const (
	syncDispatchLogsTable = "sync_dispatch_logs dl"
	syncResponseLogsTable = "sync_response_logs rl"
)

type SyncLogRepository interface {
	CreateDispatch(eventType string, payload json.RawMessage) (*domain.SyncDispatchLog, error)
	UpdateDispatchStatus(dispatchID string, status domain.DispatchStatus) error
	CreateResponse(tx *sql.Tx, response *domain.SyncResponseLog) (*domain.SyncResponseLog, error)
	ListResponsesByDispatch(dispatchID string) ([]*domain.SyncResponseLog, error)
	ListDispatches(limit int) ([]*domain.SyncDispatchLog, error)
}

type syncLogRepository struct {
	conn *postgres.Connection
}

func NewSyncLogRepository(conn *postgres.Connection) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

// CreateDispatch registra uma tentativa de despacho com o payload completo
// antes da chamada HTTP sair. O status nasce em processing.
func (r *syncLogRepository) CreateDispatch(eventType string, payload json.RawMessage) (*domain.SyncDispatchLog, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do log de despacho: %w", err)
	}

	dispatch := &domain.SyncDispatchLog{
		ID:        id,
		EventType: eventType,
		Payload:   payload,
		Status:    domain.DispatchStatusProcessing,
		CreatedAt: time.Now(),
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("sync_dispatch_logs").
		Columns("id", "event_type", "payload", "status").
		Values(dispatch.ID, dispatch.EventType, []byte(dispatch.Payload), dispatch.Status).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir log de despacho: %w", err)
	}

	return dispatch, nil
}

// UpdateDispatchStatus move o despacho para completed ou failed. É a única
// mutação permitida no ledger; as linhas nunca são reescritas.
func (r *syncLogRepository) UpdateDispatchStatus(dispatchID string, status domain.DispatchStatus) error {
	query, args, err := squirrel.StatementBuilder.
		Update("sync_dispatch_logs").
		Set("status", status).
		Where(squirrel.Eq{"id": dispatchID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar status do despacho: %w", err)
	}

	return nil
}

// CreateResponse grava o desfecho de uma entidade afetada pelo despacho,
// dentro da transação em que o ID externo da entidade é persistido.
func (r *syncLogRepository) CreateResponse(tx *sql.Tx, response *domain.SyncResponseLog) (*domain.SyncResponseLog, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do log de resposta: %w", err)
	}
	response.ID = id
	response.CreatedAt = time.Now()

	query, args, err := squirrel.StatementBuilder.
		Insert("sync_response_logs").
		Columns("id", "dispatch_id", "http_status", "response_data", "error_message", "entity_id", "entity_type").
		Values(
			response.ID,
			response.DispatchID,
			response.HTTPStatus,
			[]byte(response.ResponseData),
			response.ErrorMessage,
			response.EntityID,
			response.EntityType,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir log de resposta: %w", err)
	}

	return response, nil
}

func (r *syncLogRepository) ListResponsesByDispatch(dispatchID string) ([]*domain.SyncResponseLog, error) {
	query, args, err := squirrel.
		Select("rl.id, rl.dispatch_id, rl.http_status, rl.response_data, rl.error_message, rl.entity_id, rl.entity_type, rl.created_at").
		From(syncResponseLogsTable).
		Where(squirrel.Eq{"rl.dispatch_id": dispatchID}).
		OrderBy("rl.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	responses := make([]*domain.SyncResponseLog, 0)
	for rows.Next() {
		response := &domain.SyncResponseLog{}
		var responseData []byte
		err := rows.Scan(
			&response.ID,
			&response.DispatchID,
			&response.HTTPStatus,
			&responseData,
			&response.ErrorMessage,
			&response.EntityID,
			&response.EntityType,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear log de resposta: %w", err)
		}
		response.ResponseData = responseData
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return responses, nil
}

func (r *syncLogRepository) ListDispatches(limit int) ([]*domain.SyncDispatchLog, error) {
	query, args, err := squirrel.
		Select("dl.id, dl.event_type, dl.payload, dl.status, dl.created_at").
		From(syncDispatchLogsTable).
		OrderBy("dl.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	dispatches := make([]*domain.SyncDispatchLog, 0)
	for rows.Next() {
		dispatch := &domain.SyncDispatchLog{}
		var payload []byte
		err := rows.Scan(&dispatch.ID, &dispatch.EventType, &payload, &dispatch.Status, &dispatch.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear log de despacho: %w", err)
		}
		dispatch.Payload = payload
		dispatches = append(dispatches, dispatch)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return dispatches, nil
}
