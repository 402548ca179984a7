package recording

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/cache"
	"github.com/vfg2006/ads-performance-api/pkg/utils"
)

// RecordInput descreve a gravação de um valor de métrica para uma entidade
// dentro de um período.
type RecordInput struct {
	Metric     string
	EntityID   string
	EntityType domain.EntityType
	AdTypeID   domain.AdTypeID
	ReportID   *string
	StartDate  time.Time
	EndDate    time.Time
	RawValue   string
	Currency   string
}

// Recorder grava e formata valores de métrica conforme o catálogo
type Recorder interface {
	RecordValue(ctx context.Context, policy domain.CompanyPolicy, input RecordInput) (*domain.MetricRecord, error)
	FormatValue(def *domain.MetricDefinition, value domain.MetricValue) string
	LookupDefinition(name string, entityType domain.EntityType, adTypeID domain.AdTypeID) (*domain.MetricDefinition, error)
}

// Service implementa a interface Recorder
type Service struct {
	cfg             *config.Config
	definitions     repository.MetricDefinitionRepository
	statistics      repository.StatisticRepository
	catalog         *cache.Cache
	defaultCurrency string
}

// NewService cria uma nova instância do serviço de gravação de métricas
func NewService(
	cfg *config.Config,
	definitions repository.MetricDefinitionRepository,
	statistics repository.StatisticRepository,
) Recorder {
	return &Service{
		cfg:             cfg,
		definitions:     definitions,
		statistics:      statistics,
		catalog:         cache.New(time.Duration(cfg.Insights.CacheTTLMinutes) * time.Minute),
		defaultCurrency: "USD",
	}
}

// RecordValue grava o valor de uma métrica para uma entidade e um período.
// A métrica precisa existir no catálogo para o tipo de entidade informado;
// o valor bruto é interpretado conforme o tipo de valor do catálogo.
func (s *Service) RecordValue(ctx context.Context, policy domain.CompanyPolicy, input RecordInput) (*domain.MetricRecord, error) {
	def, err := s.LookupDefinition(input.Metric, input.EntityType, input.AdTypeID)
	if err != nil {
		return nil, err
	}

	value, err := s.parseValue(def, input)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"metric":      input.Metric,
			"entity_id":   input.EntityID,
			"entity_type": input.EntityType,
			"raw_value":   input.RawValue,
		}).Warn("recording: failed to parse metric value")
		return nil, err
	}

	record := &domain.StatisticRecord{
		CompanyID:  policy.CompanyID,
		ReportID:   input.ReportID,
		EntityID:   input.EntityID,
		EntityType: input.EntityType,
		AdTypeID:   input.AdTypeID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	statistic, err := s.statistics.FindOrCreate(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("erro ao resolver registro estatístico: %w", err)
	}

	return s.statistics.UpsertMetricValue(ctx, statistic.ID, def, value)
}

// LookupDefinition resolve a definição de catálogo da métrica. O resultado é
// memoizado; um catálogo novo aparece sem reinício porque a ausência nunca é
// memoizada.
func (s *Service) LookupDefinition(name string, entityType domain.EntityType, adTypeID domain.AdTypeID) (*domain.MetricDefinition, error) {
	key := fmt.Sprintf("metricdef|%s|%s|%d", name, entityType, adTypeID)

	cached, err := s.catalog.Remember(key, func() (any, error) {
		def, err := s.definitions.GetByNameAndEntityType(name, entityType, adTypeID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar definição de métrica: %w", err)
		}
		if def == nil {
			return nil, &domain.UnknownMetricError{Metric: name, EntityType: entityType}
		}
		return def, nil
	})
	if err != nil {
		return nil, err
	}

	return cached.(*domain.MetricDefinition), nil
}

// FormatValue renderiza o valor para exibição conforme o tipo da métrica
func (s *Service) FormatValue(def *domain.MetricDefinition, value domain.MetricValue) string {
	return value.Format()
}

// parseValue interpreta o valor bruto conforme o tipo de valor do catálogo
func (s *Service) parseValue(def *domain.MetricDefinition, input RecordInput) (domain.MetricValue, error) {
	switch def.ValueType {
	case domain.ValueTypeInteger, domain.ValueTypeRatio:
		n, err := utils.ParseNumeric(input.RawValue)
		if err != nil {
			return domain.MetricValue{}, fmt.Errorf("erro ao interpretar valor numérico %q: %w", input.RawValue, err)
		}
		return domain.NumericValue(def.ValueType, n, ""), nil
	case domain.ValueTypeCurrency:
		n, err := utils.ParseNumeric(input.RawValue)
		if err != nil {
			return domain.MetricValue{}, fmt.Errorf("erro ao interpretar valor monetário %q: %w", input.RawValue, err)
		}
		currency := input.Currency
		if currency == "" {
			currency = s.defaultCurrency
		}
		return domain.NumericValue(domain.ValueTypeCurrency, n, currency), nil
	case domain.ValueTypePercentage:
		n, err := utils.ParsePercentage(input.RawValue)
		if err != nil {
			return domain.MetricValue{}, fmt.Errorf("erro ao interpretar percentual %q: %w", input.RawValue, err)
		}
		return domain.NumericValue(domain.ValueTypePercentage, n, ""), nil
	case domain.ValueTypeDate:
		d, err := time.Parse(time.DateOnly, input.RawValue)
		if err != nil {
			return domain.MetricValue{}, fmt.Errorf("erro ao interpretar data %q: %w", input.RawValue, err)
		}
		return domain.DateValue(d), nil
	default:
		return domain.TextValue(input.RawValue), nil
	}
}
