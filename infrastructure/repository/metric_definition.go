package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

const metricDefinitionsTable = "metric_definitions md"

type MetricDefinitionRepository interface {
	GetByNameAndEntityType(name string, entityType domain.EntityType, adTypeID domain.AdTypeID) (*domain.MetricDefinition, error)
	ListByEntityType(entityType domain.EntityType, adTypeID domain.AdTypeID) ([]*domain.MetricDefinition, error)
	Create(def *domain.MetricDefinition) (*domain.MetricDefinition, error)
}

type metricDefinitionRepository struct {
	conn *postgres.Connection
}

func NewMetricDefinitionRepository(conn *postgres.Connection) MetricDefinitionRepository {
	return &metricDefinitionRepository{
		conn: conn,
	}
}

func (r *metricDefinitionRepository) GetByNameAndEntityType(name string, entityType domain.EntityType, adTypeID domain.AdTypeID) (*domain.MetricDefinition, error) {
	query, args, err := squirrel.
		Select("md.id, md.name, md.entity_type, md.ad_type_id, md.value_type").
		From(metricDefinitionsTable).
		Where(squirrel.Eq{"md.name": name, "md.entity_type": entityType, "md.ad_type_id": adTypeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	def := &domain.MetricDefinition{}
	err = row.Scan(&def.ID, &def.Name, &def.EntityType, &def.AdTypeID, &def.ValueType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear definição de métrica: %w", err)
	}

	return def, nil
}

func (r *metricDefinitionRepository) ListByEntityType(entityType domain.EntityType, adTypeID domain.AdTypeID) ([]*domain.MetricDefinition, error) {
	query, args, err := squirrel.
		Select("md.id, md.name, md.entity_type, md.ad_type_id, md.value_type").
		From(metricDefinitionsTable).
		Where(squirrel.Eq{"md.entity_type": entityType, "md.ad_type_id": adTypeID}).
		OrderBy("md.name ASC").
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

	defs := make([]*domain.MetricDefinition, 0)
	for rows.Next() {
		def := &domain.MetricDefinition{}
		if err := rows.Scan(&def.ID, &def.Name, &def.EntityType, &def.AdTypeID, &def.ValueType); err != nil {
			return nil, fmt.Errorf("erro ao escanear definição de métrica: %w", err)
		}
		defs = append(defs, def)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return defs, nil
}

func (r *metricDefinitionRepository) Create(def *domain.MetricDefinition) (*domain.MetricDefinition, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("metric_definitions").
		Columns("name", "entity_type", "ad_type_id", "value_type").
		Values(def.Name, def.EntityType, def.AdTypeID, def.ValueType).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&def.ID); err != nil {
		return nil, fmt.Errorf("erro ao inserir definição de métrica: %w", err)
	}

	return def, nil
}
