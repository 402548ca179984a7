package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ads-performance-api/pkg/log"
	"github.com/vfg2006/ads-performance-api/pkg/middleware"
)

// GetInsights retorna a visão agregada de métricas de um tipo de entidade:
// totais, razões derivadas e a série temporal na granularidade resolvida
// a partir do intervalo pedido.
func GetInsights(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		entityType := r.URL.Query().Get("entity_type")
		if !domain.ValidEntityType(entityType) {
			logger.WithField("entity_type", entityType).Warn("insights: invalid entity_type parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de entidade inválido", nil)
			return
		}

		query := aggregating.InsightQuery{
			EntityType: domain.EntityType(entityType),
		}

		if raw := r.URL.Query().Get("ad_type_id"); raw != "" {
			adTypeID, err := strconv.Atoi(raw)
			if err != nil {
				logger.WithField("ad_type_id", raw).Warn("insights: invalid ad_type_id parameter")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de anúncio inválido", nil)
				return
			}
			query.AdTypeID = domain.AdTypeID(adTypeID)
		}

		// A presença do parâmetro com valor vazio significa escopo vazio e
		// devolve o resultado zerado sem consultar o banco
		if values, present := r.URL.Query()["entity_ids"]; present {
			query.EntityIDs = []string{}
			for _, value := range values {
				for _, id := range strings.Split(value, ",") {
					if id = strings.TrimSpace(id); id != "" {
						query.EntityIDs = append(query.EntityIDs, id)
					}
				}
			}
		}

		if parentID := r.URL.Query().Get("parent_id"); parentID != "" {
			query.ParentID = &parentID
		}

		dateRange, err := parseDateRange(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": r.URL.Query().Get("start_date"),
				"end_date":   r.URL.Query().Get("end_date"),
				"error":      err.Error(),
			}).Warn("insights: invalid date range parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Intervalo de datas inválido", nil)
			return
		}
		query.Range = dateRange

		insights, err := service.Aggregate(userClaims.Policy(), query)
		if err != nil {
			logger.WithFields(log.Fields{
				"entity_type": entityType,
				"error":       err.Error(),
			}).Error("insights: failed to aggregate metrics")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao agregar métricas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insights); err != nil {
			logger.WithField("error", err.Error()).Error("insights: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// parseDateRange monta o intervalo fechado a partir dos parâmetros
// start_date/end_date. Ambos ausentes devolve nil e o chamador cai no
// intervalo padrão de configuração.
func parseDateRange(r *http.Request) (*domain.DateRange, error) {
	startRaw := r.URL.Query().Get("start_date")
	endRaw := r.URL.Query().Get("end_date")

	if startRaw == "" && endRaw == "" {
		return nil, nil
	}

	startDate, err := time.Parse(time.DateOnly, startRaw)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(time.DateOnly, endRaw)
	if err != nil {
		return nil, err
	}

	return &domain.DateRange{
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}
