package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ads-performance-api/pkg/log"
)

// defaultHistoryLimit limita a listagem de despachos quando o chamador não
// informa um limite explícito
const defaultHistoryLimit = 50

// SyncRequest carrega as linhas locais a serem espelhadas na API externa.
// Apenas o campo do tipo de entidade da rota é considerado.
type SyncRequest struct {
	AdTypeID         int                               `json:"ad_type_id"`
	Campaigns        []*domain.Campaign                `json:"campaigns,omitempty"`
	AdGroups         []*domain.AdGroup                 `json:"ad_groups,omitempty"`
	Keywords         []*domain.Keyword                 `json:"keywords,omitempty"`
	NegativeKeywords []*domain.NegativeKeyword         `json:"negative_keywords,omitempty"`
	ProductAds       []*domain.ProductAd               `json:"product_ads,omitempty"`
	Targets          []*domain.TargetingClause         `json:"targets,omitempty"`
	NegativeTargets  []*domain.NegativeTargetingClause `json:"negative_targets,omitempty"`
}

// SyncEntities despacha um lote de entidades locais para a API externa e
// devolve o resultado consolidado. Falhas individuais dentro do lote não
// bloqueiam as demais; falha de transporte devolve conflito com a mensagem
// subjacente.
func SyncEntities(service syncing.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		entityType := httprouter.ParamsFromContext(r.Context()).ByName("entityType")
		if !domain.ValidEntityType(entityType) {
			logger.WithField("entity_type", entityType).Warn("sync: invalid entity type")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de entidade inválido", nil)
			return
		}

		var req SyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithField("error", err.Error()).Warn("sync: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		adTypeID := domain.AdTypeID(req.AdTypeID)
		if adTypeID == 0 {
			adTypeID = domain.AdTypeSponsoredProducts
		}

		var (
			result *domain.BatchResult
			err    error
		)

		switch domain.EntityType(entityType) {
		case domain.EntityTypeCampaign:
			result, err = service.SyncCampaigns(r.Context(), req.Campaigns)
		case domain.EntityTypeAdGroup:
			result, err = service.SyncAdGroups(r.Context(), adTypeID, req.AdGroups)
		case domain.EntityTypeKeyword:
			result, err = service.SyncKeywords(r.Context(), adTypeID, req.Keywords)
		case domain.EntityTypeNegativeKeyword:
			result, err = service.SyncNegativeKeywords(r.Context(), adTypeID, req.NegativeKeywords)
		case domain.EntityTypeProductAd:
			result, err = service.SyncProductAds(r.Context(), adTypeID, req.ProductAds)
		case domain.EntityTypeTarget:
			result, err = service.SyncTargets(r.Context(), adTypeID, req.Targets)
		case domain.EntityTypeNegativeTarget:
			result, err = service.SyncNegativeTargets(r.Context(), adTypeID, req.NegativeTargets)
		}

		if err != nil {
			logger.WithFields(log.Fields{
				"entity_type": entityType,
				"error":       err.Error(),
			}).Error("sync: dispatch failed")

			if domain.IsExternalSync(err) {
				apiErrors.WriteError(w, apiErrors.ErrSyncConflict, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar entidades", nil)
			return
		}

		logger.WithFields(log.Fields{
			"entity_type": entityType,
			"succeeded":   len(result.Succeeded),
			"failed":      len(result.Failed),
		}).Info("sync: batch dispatched")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithField("error", err.Error()).Error("sync: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetSyncHistory lista os despachos mais recentes do log de sincronização
func GetSyncHistory(service syncing.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido", nil)
				return
			}
			limit = parsed
		}

		history, err := service.History(limit)
		if err != nil {
			logger.WithField("error", err.Error()).Error("sync: failed to list dispatch history")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar histórico de sincronização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(history); err != nil {
			logger.WithField("error", err.Error()).Error("sync: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetSyncResponses lista os desfechos individuais de um despacho, na ordem
// em que as entidades entraram no lote
func GetSyncResponses(service syncing.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dispatchID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if dispatchID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do despacho não fornecido", nil)
			return
		}

		responses, err := service.DispatchResponses(dispatchID)
		if err != nil {
			logger.WithFields(log.Fields{
				"dispatch_id": dispatchID,
				"error":       err.Error(),
			}).Error("sync: failed to list dispatch responses")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar respostas do despacho", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			logger.WithField("error", err.Error()).Error("sync: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
