package aggregating

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/cache"
)

// InsightQuery descreve o escopo de uma consulta de métricas agregadas.
// EntityIDs nulo significa sem restrição de entidades; lista vazia significa
// que o chamador já sabe que nenhuma entidade passou nos filtros.
type InsightQuery struct {
	EntityType domain.EntityType
	AdTypeID   domain.AdTypeID
	EntityIDs  []string
	ParentID   *string
	Range      *domain.DateRange
}

// Aggregator monta a visão agregada de métricas por período
type Aggregator interface {
	Aggregate(policy domain.CompanyPolicy, query InsightQuery) (*domain.AggregatedInsights, error)
}

// Service implementa a interface Aggregator
type Service struct {
	cfg          *config.Config
	aggregations repository.AggregationRepository
	results      *cache.Cache
}

// NewService cria uma nova instância do serviço de agregação de métricas
func NewService(cfg *config.Config, aggregations repository.AggregationRepository) Aggregator {
	return &Service{
		cfg:          cfg,
		aggregations: aggregations,
		results:      cache.New(time.Duration(cfg.Insights.CacheTTLMinutes) * time.Minute),
	}
}

// Aggregate resolve o intervalo efetivo, escolhe a granularidade do bucket e
// monta a série temporal pivotada mais o total geral, com as razões derivadas
// recalculadas a partir das bases somadas.
func (s *Service) Aggregate(policy domain.CompanyPolicy, query InsightQuery) (*domain.AggregatedInsights, error) {
	// Lista de entidades vazia significa resultado vazio sem tocar o banco
	if query.EntityIDs != nil && len(query.EntityIDs) == 0 {
		return domain.EmptyInsights(s.requestedOrFallbackRange(query)), nil
	}

	cached, err := s.results.Remember(s.cacheKey(policy, query), func() (any, error) {
		return s.aggregate(policy, query)
	})
	if err != nil {
		return nil, err
	}

	return cached.(*domain.AggregatedInsights), nil
}

func (s *Service) aggregate(policy domain.CompanyPolicy, query InsightQuery) (*domain.AggregatedInsights, error) {
	scope := repository.AggregationScope{
		CompanyID:  policy.CompanyID,
		EntityType: query.EntityType,
		AdTypeID:   query.AdTypeID,
		EntityIDs:  query.EntityIDs,
		ParentID:   query.ParentID,
	}

	dateRange, err := s.resolveRange(scope, query)
	if err != nil {
		return nil, err
	}
	scope.Range = *dateRange

	grouping := domain.ResolveGrouping(*dateRange)

	series, err := s.aggregations.SeriesByBucket(scope, grouping)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"company_id":  policy.CompanyID,
			"entity_type": query.EntityType,
			"error":       err.Error(),
		}).Error("insights: failed to build time series")
		return nil, err
	}

	totals, err := s.aggregations.Totals(scope)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"company_id":  policy.CompanyID,
			"entity_type": query.EntityType,
			"error":       err.Error(),
		}).Error("insights: failed to compute totals")
		return nil, err
	}

	for i := range series {
		series[i].DeriveRatios()
	}
	totals.DeriveRatios()

	return &domain.AggregatedInsights{
		TimeSeries: series,
		Totals:     *totals,
		Grouping:   grouping,
	}, nil
}

// resolveRange decide o intervalo efetivo da consulta: o informado pelo
// chamador, senão o intervalo real dos dados, senão a janela padrão de
// retrocesso configurada.
func (s *Service) resolveRange(scope repository.AggregationScope, query InsightQuery) (*domain.DateRange, error) {
	if query.Range != nil {
		return query.Range, nil
	}

	effective, err := s.aggregations.EffectiveDateRange(scope)
	if err != nil {
		return nil, err
	}
	if effective != nil {
		return effective, nil
	}

	fallback := domain.LastDays(s.cfg.Insights.FallbackWindowDays)
	return &fallback, nil
}

func (s *Service) requestedOrFallbackRange(query InsightQuery) domain.DateRange {
	if query.Range != nil {
		return *query.Range
	}
	return domain.LastDays(s.cfg.Insights.FallbackWindowDays)
}

// cacheKey serializa o escopo completo da consulta; escopos distintos nunca
// compartilham entrada de cache.
func (s *Service) cacheKey(policy domain.CompanyPolicy, query InsightQuery) string {
	parent := ""
	if query.ParentID != nil {
		parent = *query.ParentID
	}

	rangeKey := ""
	if query.Range != nil {
		rangeKey = fmt.Sprintf("%s..%s",
			query.Range.StartDate.Format(time.DateOnly),
			query.Range.EndDate.Format(time.DateOnly),
		)
	}

	return fmt.Sprintf("insights|%d|%s|%d|%s|%s|%s",
		policy.CompanyID,
		query.EntityType,
		query.AdTypeID,
		parent,
		strings.Join(query.EntityIDs, ","),
		rangeKey,
	)
}
