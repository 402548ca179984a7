package syncing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// batchCaller é a visão do integrador usada pelo despachante
type batchCaller interface {
	CreateBatch(ctx context.Context, endpoint string, payload any) ([]byte, amazondomain.BatchOutcome, error)
}

// transactionRunner abre a transação que amarra o log de resposta de uma
// entidade à gravação do seu ID externo
type transactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Dispatcher despacha mutações locais para a API externa e mantém o ledger
// de sincronização.
type Dispatcher interface {
	DispatchAndLog(ctx context.Context, endpoint, eventType string, payload any, entities []domain.SyncEntity) (*domain.BatchResult, error)
	SyncCampaigns(ctx context.Context, campaigns []*domain.Campaign) (*domain.BatchResult, error)
	SyncAdGroups(ctx context.Context, adTypeID domain.AdTypeID, adGroups []*domain.AdGroup) (*domain.BatchResult, error)
	SyncKeywords(ctx context.Context, adTypeID domain.AdTypeID, keywords []*domain.Keyword) (*domain.BatchResult, error)
	SyncNegativeKeywords(ctx context.Context, adTypeID domain.AdTypeID, keywords []*domain.NegativeKeyword) (*domain.BatchResult, error)
	SyncProductAds(ctx context.Context, adTypeID domain.AdTypeID, ads []*domain.ProductAd) (*domain.BatchResult, error)
	SyncTargets(ctx context.Context, adTypeID domain.AdTypeID, targets []*domain.TargetingClause) (*domain.BatchResult, error)
	SyncNegativeTargets(ctx context.Context, adTypeID domain.AdTypeID, targets []*domain.NegativeTargetingClause) (*domain.BatchResult, error)
	History(limit int) ([]*domain.SyncDispatchLog, error)
	DispatchResponses(dispatchID string) ([]*domain.SyncResponseLog, error)
}

// Service implementa a interface Dispatcher
type Service struct {
	amazon   batchCaller
	conn     transactionRunner
	syncLogs repository.SyncLogRepository
	entities repository.EntityRepository
}

// NewService cria uma nova instância do despachante de sincronização
func NewService(
	amazon batchCaller,
	conn transactionRunner,
	syncLogs repository.SyncLogRepository,
	entities repository.EntityRepository,
) Dispatcher {
	return &Service{
		amazon:   amazon,
		conn:     conn,
		syncLogs: syncLogs,
		entities: entities,
	}
}

// DispatchAndLog registra o despacho com o payload completo, faz a chamada em
// lote e grava o desfecho de cada entidade. O ID externo de cada sucesso é
// persistido na mesma transação do seu log de resposta. Falha de transporte
// marca o despacho como failed e registra a falha para todas as entidades,
// sem tocar o estado local delas.
func (s *Service) DispatchAndLog(ctx context.Context, endpoint, eventType string, payload any, entities []domain.SyncEntity) (*domain.BatchResult, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload do despacho: %w", err)
	}

	dispatch, err := s.syncLogs.CreateDispatch(eventType, payloadBytes)
	if err != nil {
		return nil, err
	}

	body, outcome, err := s.amazon.CreateBatch(ctx, endpoint, payload)
	if err != nil {
		s.recordDispatchFailure(ctx, dispatch, entities, err)
		return nil, err
	}

	result := &domain.BatchResult{
		Succeeded: make([]domain.SyncSuccess, 0, len(outcome.Success)),
		Failed:    make([]domain.SyncFailure, 0, len(outcome.Error)),
	}

	for _, item := range outcome.Success {
		entity, ok := entityAt(entities, item.Index)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"dispatch_id": dispatch.ID,
				"index":       item.Index,
			}).Warn("sync: success index out of range")
			continue
		}

		externalID := item.ExternalID()
		if err := s.recordSuccess(ctx, dispatch.ID, entity, item, externalID); err != nil {
			logrus.WithFields(logrus.Fields{
				"dispatch_id": dispatch.ID,
				"entity_id":   entity.LocalID,
				"error":       err.Error(),
			}).Error("sync: failed to persist entity outcome")
			result.Failed = append(result.Failed, domain.SyncFailure{LocalID: entity.LocalID, Error: err.Error()})
			continue
		}

		result.Succeeded = append(result.Succeeded, domain.SyncSuccess{
			LocalID:    entity.LocalID,
			ExternalID: externalID,
		})
	}

	for _, item := range outcome.Error {
		entity, ok := entityAt(entities, item.Index)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"dispatch_id": dispatch.ID,
				"index":       item.Index,
			}).Warn("sync: error index out of range")
			continue
		}

		if err := s.recordFailure(ctx, dispatch.ID, entity, item); err != nil {
			logrus.WithFields(logrus.Fields{
				"dispatch_id": dispatch.ID,
				"entity_id":   entity.LocalID,
				"error":       err.Error(),
			}).Error("sync: failed to persist entity outcome")
		}

		result.Failed = append(result.Failed, domain.SyncFailure{
			LocalID: entity.LocalID,
			Error:   item.Message(),
		})
	}

	if err := s.syncLogs.UpdateDispatchStatus(dispatch.ID, domain.DispatchStatusCompleted); err != nil {
		logrus.WithFields(logrus.Fields{
			"dispatch_id": dispatch.ID,
			"error":       err.Error(),
		}).Error("sync: failed to update dispatch status")
	}

	logrus.WithFields(logrus.Fields{
		"dispatch_id": dispatch.ID,
		"event_type":  eventType,
		"succeeded":   len(result.Succeeded),
		"failed":      len(result.Failed),
		"body_size":   len(body),
	}).Info("sync: dispatch completed")

	return result, nil
}

// recordSuccess grava o log de resposta e o ID externo da entidade em uma
// única transação: ou os dois entram, ou nenhum.
func (s *Service) recordSuccess(ctx context.Context, dispatchID string, entity domain.SyncEntity, item amazondomain.BatchSuccessItem, externalID string) error {
	responseData, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("erro ao serializar desfecho da entidade: %w", err)
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		response := &domain.SyncResponseLog{
			DispatchID:   dispatchID,
			HTTPStatus:   http.StatusOK,
			ResponseData: responseData,
			EntityID:     entity.LocalID,
			EntityType:   entity.EntityType,
		}
		if _, err := s.syncLogs.CreateResponse(tx, response); err != nil {
			return err
		}

		if externalID == "" {
			return nil
		}
		return s.entities.UpdateExternalID(tx, entity.EntityType, entity.LocalID, externalID)
	})
}

func (s *Service) recordFailure(ctx context.Context, dispatchID string, entity domain.SyncEntity, item amazondomain.BatchErrorItem) error {
	responseData, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("erro ao serializar desfecho da entidade: %w", err)
	}

	message := item.Message()
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		response := &domain.SyncResponseLog{
			DispatchID:   dispatchID,
			HTTPStatus:   http.StatusOK,
			ResponseData: responseData,
			ErrorMessage: &message,
			EntityID:     entity.LocalID,
			EntityType:   entity.EntityType,
		}
		_, err := s.syncLogs.CreateResponse(tx, response)
		return err
	})
}

// recordDispatchFailure registra a falha de transporte para todas as
// entidades do lote e move o despacho para failed. O estado local das
// entidades permanece intacto: a mutação local é a fonte de verdade.
func (s *Service) recordDispatchFailure(ctx context.Context, dispatch *domain.SyncDispatchLog, entities []domain.SyncEntity, callErr error) {
	status := 0
	var syncErr *domain.ExternalSyncError
	if errors.As(callErr, &syncErr) {
		status = syncErr.StatusCode
	}

	message := callErr.Error()
	err := s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, entity := range entities {
			response := &domain.SyncResponseLog{
				DispatchID:   dispatch.ID,
				HTTPStatus:   status,
				ErrorMessage: &message,
				EntityID:     entity.LocalID,
				EntityType:   entity.EntityType,
			}
			if _, err := s.syncLogs.CreateResponse(tx, response); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"dispatch_id": dispatch.ID,
			"error":       err.Error(),
		}).Error("sync: failed to persist dispatch failure")
	}

	if err := s.syncLogs.UpdateDispatchStatus(dispatch.ID, domain.DispatchStatusFailed); err != nil {
		logrus.WithFields(logrus.Fields{
			"dispatch_id": dispatch.ID,
			"error":       err.Error(),
		}).Error("sync: failed to update dispatch status")
	}
}

// History lista os despachos mais recentes do ledger
func (s *Service) History(limit int) ([]*domain.SyncDispatchLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.syncLogs.ListDispatches(limit)
}

// DispatchResponses lista os desfechos por entidade de um despacho
func (s *Service) DispatchResponses(dispatchID string) ([]*domain.SyncResponseLog, error) {
	return s.syncLogs.ListResponsesByDispatch(dispatchID)
}

func entityAt(entities []domain.SyncEntity, index int) (domain.SyncEntity, bool) {
	if index < 0 || index >= len(entities) {
		return domain.SyncEntity{}, false
	}
	return entities[index], true
}
