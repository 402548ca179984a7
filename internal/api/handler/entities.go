package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/listing"
	"github.com/vfg2006/ads-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ads-performance-api/pkg/log"
	"github.com/vfg2006/ads-performance-api/pkg/middleware"
)

// SearchCampaigns lista as campanhas da empresa do usuário aplicando a
// especificação de filtro/ordenação enviada no corpo. Filtros com prefixo
// metric: são resolvidos contra as métricas agregadas.
func SearchCampaigns(service listing.Lister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var spec *domain.FilterSpec
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
				logger.WithField("error", err.Error()).Warn("listing: invalid filter spec")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		var adTypeID domain.AdTypeID
		if raw := r.URL.Query().Get("ad_type_id"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de anúncio inválido", nil)
				return
			}
			adTypeID = domain.AdTypeID(parsed)
		}

		campaigns, err := service.ListCampaigns(userClaims.Policy(), adTypeID, spec)
		if err != nil {
			if domain.IsValidation(err) {
				logger.WithField("error", err.Error()).Warn("listing: rejected filter spec")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}

			logger.WithField("error", err.Error()).Error("listing: failed to list campaigns")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar campanhas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(campaigns); err != nil {
			logger.WithField("error", err.Error()).Error("listing: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// SearchAdGroups lista os grupos de anúncios da empresa do usuário com a
// mesma especificação genérica das campanhas
func SearchAdGroups(service listing.Lister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var spec *domain.FilterSpec
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
				logger.WithField("error", err.Error()).Warn("listing: invalid filter spec")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		adGroups, err := service.ListAdGroups(userClaims.Policy(), spec)
		if err != nil {
			if domain.IsValidation(err) {
				logger.WithField("error", err.Error()).Warn("listing: rejected filter spec")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}

			logger.WithField("error", err.Error()).Error("listing: failed to list ad groups")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar grupos de anúncios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(adGroups); err != nil {
			logger.WithField("error", err.Error()).Error("listing: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
