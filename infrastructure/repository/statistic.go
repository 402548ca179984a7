package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/utils"
)

const statisticRecordsTable = "statistic_records sr"

type StatisticRepository interface {
	FindOrCreate(ctx context.Context, record *domain.StatisticRecord) (*domain.StatisticRecord, error)
	UpsertMetricValue(ctx context.Context, statisticID string, def *domain.MetricDefinition, value domain.MetricValue) (*domain.MetricRecord, error)
	DeleteByReportID(ctx context.Context, reportID string) (int64, error)
}

type statisticRepository struct {
	conn *postgres.Connection
}

func NewStatisticRepository(conn *postgres.Connection) StatisticRepository {
	return &statisticRepository{
		conn: conn,
	}
}

// FindOrCreate busca o registro estatístico da chave (empresa, relatório,
// entidade, intervalo) ou cria um novo. A ingestão concorrente de relatórios
// distintos nunca colide porque a chave inclui o relatório.
func (r *statisticRepository) FindOrCreate(ctx context.Context, record *domain.StatisticRecord) (*domain.StatisticRecord, error) {
	existing, err := r.find(record)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do registro estatístico: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("statistic_records").
		Columns("id", "company_id", "report_id", "entity_id", "entity_type", "ad_type_id", "start_date", "end_date").
		Values(
			id,
			record.CompanyID,
			record.ReportID,
			record.EntityID,
			record.EntityType,
			record.AdTypeID,
			record.StartDate.Format(time.DateOnly),
			record.EndDate.Format(time.DateOnly),
		).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir registro estatístico: %w", err)
	}

	// Reler cobre o caso de outra ingestão ter vencido a corrida do insert
	created, err := r.find(record)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("registro estatístico não encontrado após inserção")
	}

	return created, nil
}

func (r *statisticRepository) find(record *domain.StatisticRecord) (*domain.StatisticRecord, error) {
	predicate := squirrel.Eq{
		"sr.company_id":  record.CompanyID,
		"sr.entity_id":   record.EntityID,
		"sr.entity_type": record.EntityType,
		"sr.ad_type_id":  record.AdTypeID,
		"sr.start_date":  record.StartDate.Format(time.DateOnly),
		"sr.end_date":    record.EndDate.Format(time.DateOnly),
	}
	if record.ReportID != nil {
		predicate["sr.report_id"] = *record.ReportID
	}

	query, args, err := squirrel.
		Select("sr.id, sr.company_id, sr.report_id, sr.entity_id, sr.entity_type, sr.ad_type_id, sr.start_date, sr.end_date, sr.created_at").
		From(statisticRecordsTable).
		Where(predicate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	found := &domain.StatisticRecord{}
	err = row.Scan(
		&found.ID,
		&found.CompanyID,
		&found.ReportID,
		&found.EntityID,
		&found.EntityType,
		&found.AdTypeID,
		&found.StartDate,
		&found.EndDate,
		&found.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear registro estatístico: %w", err)
	}

	return found, nil
}

// UpsertMetricValue grava o valor de uma métrica para o registro estatístico.
// O par (statistic_id, metric_definition_id) é único: uma segunda gravação
// atualiza o valor no lugar em vez de criar outra linha.
func (r *statisticRepository) UpsertMetricValue(ctx context.Context, statisticID string, def *domain.MetricDefinition, value domain.MetricValue) (*domain.MetricRecord, error) {
	newID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do registro de métrica: %w", err)
	}

	record := &domain.MetricRecord{
		StatisticID:        statisticID,
		MetricDefinitionID: def.ID,
		Value:              value,
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		recordQuery, recordArgs, err := squirrel.StatementBuilder.
			Insert("metric_records").
			Columns("id", "statistic_id", "metric_definition_id").
			Values(newID, statisticID, def.ID).
			Suffix(`
				ON CONFLICT (statistic_id, metric_definition_id) DO UPDATE SET
					statistic_id = EXCLUDED.statistic_id
				RETURNING id
			`).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if err := tx.QueryRow(recordQuery, recordArgs...).Scan(&record.ID); err != nil {
			return fmt.Errorf("erro ao gravar registro de métrica: %w", err)
		}

		var dateValue interface{}
		if value.Date != nil {
			dateValue = value.Date.Format(time.DateOnly)
		}

		valueQuery, valueArgs, err := squirrel.StatementBuilder.
			Insert("metric_values").
			Columns("metric_id", "value_type", "numeric_value", "currency", "text_value", "date_value").
			Values(record.ID, value.Type, value.Numeric, value.Currency, value.Text, dateValue).
			Suffix(`
				ON CONFLICT (metric_id) DO UPDATE SET
					value_type = EXCLUDED.value_type,
					numeric_value = EXCLUDED.numeric_value,
					currency = EXCLUDED.currency,
					text_value = EXCLUDED.text_value,
					date_value = EXCLUDED.date_value
			`).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.Exec(valueQuery, valueArgs...); err != nil {
			return fmt.Errorf("erro ao gravar valor de métrica: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteByReportID remove os registros estatísticos de um relatório; os
// valores de métrica caem em cascata.
func (r *statisticRepository) DeleteByReportID(ctx context.Context, reportID string) (int64, error) {
	query, args, err := squirrel.
		Delete("statistic_records").
		Where(squirrel.Eq{"report_id": reportID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
