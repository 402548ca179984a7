package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// AggregationScope delimita o conjunto de registros estatísticos de uma
// agregação. EntityIDs nulo significa sem restrição; lista vazia é um
// curto-circuito que o chamador deve resolver antes de chegar aqui.
type AggregationScope struct {
	CompanyID  int64
	EntityType domain.EntityType
	AdTypeID   domain.AdTypeID
	EntityIDs  []string
	ParentID   *string
	Range      domain.DateRange
}

type AggregationRepository interface {
	EffectiveDateRange(scope AggregationScope) (*domain.DateRange, error)
	SeriesByBucket(scope AggregationScope, grouping domain.Grouping) ([]domain.TimeSeriesPoint, error)
	Totals(scope AggregationScope) (*domain.MetricTotals, error)
}

type aggregationRepository struct {
	conn *postgres.Connection
}

func NewAggregationRepository(conn *postgres.Connection) AggregationRepository {
	return &aggregationRepository{
		conn: conn,
	}
}

// EffectiveDateRange resolve MIN(start_date)..MAX(start_date) entre os
// registros do escopo. Retorna nil quando o escopo não tem registros.
func (r *aggregationRepository) EffectiveDateRange(scope AggregationScope) (*domain.DateRange, error) {
	builder := squirrel.
		Select("MIN(sr.start_date), MAX(sr.start_date)").
		From(statisticRecordsTable)

	builder = applyScope(builder, scope, false)

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var start, end sql.NullTime
	if err := r.conn.QueryRow(query, args...).Scan(&start, &end); err != nil {
		return nil, fmt.Errorf("erro ao resolver intervalo efetivo: %w", err)
	}

	if !start.Valid || !end.Valid {
		return nil, nil
	}

	return &domain.DateRange{StartDate: start.Time, EndDate: end.Time}, nil
}

// SeriesByBucket monta a série temporal pivotada: uma linha por bucket com
// todas as métricas base como colunas, construída em tempo de execução a
// partir da tabela estática de métricas.
func (r *aggregationRepository) SeriesByBucket(scope AggregationScope, grouping domain.Grouping) ([]domain.TimeSeriesPoint, error) {
	periodExpr := bucketExpression(grouping)

	builder := squirrel.
		Select().
		Column(fmt.Sprintf("%s AS period", periodExpr)).
		From(statisticRecordsTable).
		Join("metric_records mr ON mr.statistic_id = sr.id").
		Join("metric_definitions md ON md.id = mr.metric_definition_id").
		Join("metric_values mv ON mv.metric_id = mr.id")

	builder = pivotColumns(builder, domain.BaseMetricSpecs)
	builder = applyScope(builder, scope, true)
	builder = builder.
		GroupBy(periodExpr).
		OrderBy("period ASC")

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	series := make([]domain.TimeSeriesPoint, 0)
	for rows.Next() {
		point := domain.TimeSeriesPoint{}
		if err := scanMetricColumns(rows.Scan, &point.Period, &point.MetricTotals); err != nil {
			return nil, fmt.Errorf("erro ao escanear bucket da série: %w", err)
		}
		series = append(series, point)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return series, nil
}

// Totals calcula o total geral com a mesma query base da série, sem
// agrupamento por bucket.
func (r *aggregationRepository) Totals(scope AggregationScope) (*domain.MetricTotals, error) {
	builder := squirrel.
		Select().
		From(statisticRecordsTable).
		Join("metric_records mr ON mr.statistic_id = sr.id").
		Join("metric_definitions md ON md.id = mr.metric_definition_id").
		Join("metric_values mv ON mv.metric_id = mr.id")

	builder = pivotColumns(builder, domain.BaseMetricSpecs)
	builder = applyScope(builder, scope, true)

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	totals := &domain.MetricTotals{}
	err = scanMetricColumns(r.conn.QueryRow(query, args...).Scan, nil, totals)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.MetricTotals{}, nil
		}
		return nil, fmt.Errorf("erro ao escanear totais: %w", err)
	}

	return totals, nil
}

// pivotColumns adiciona uma coluna agregada por métrica base, no formato
// AGG(CASE WHEN md.name = X THEN valor ELSE 0 END), produzindo uma linha
// por bucket com as métricas como colunas em vez de uma linha por métrica.
func pivotColumns(builder squirrel.SelectBuilder, specs []domain.MetricSpec) squirrel.SelectBuilder {
	for _, spec := range specs {
		expr := squirrel.Expr(
			fmt.Sprintf("COALESCE(%s(CASE WHEN md.name = ? THEN mv.numeric_value ELSE 0 END), 0)", spec.Aggregation),
			spec.Name,
		)
		builder = builder.Column(squirrel.Alias(expr, pivotAlias(spec.Name)))
	}
	return builder
}

// pivotAlias normaliza o nome da métrica para um alias de coluna seguro
func pivotAlias(name string) string {
	return fmt.Sprintf("metric_%s", name)
}

// bucketExpression devolve a expressão SQL da chave do bucket. A quinzena
// reutiliza a chave de mês calendário como aproximação.
func bucketExpression(grouping domain.Grouping) string {
	switch grouping {
	case domain.GroupingWeek:
		return "to_char(date_trunc('week', sr.start_date), 'YYYY-MM-DD')"
	case domain.GroupingTwoWeeks, domain.GroupingMonth:
		return "to_char(sr.start_date, 'YYYY-MM')"
	default:
		return "to_char(sr.start_date, 'YYYY-MM-DD')"
	}
}

// applyScope aplica os predicados do escopo à query base
func applyScope(builder squirrel.SelectBuilder, scope AggregationScope, withRange bool) squirrel.SelectBuilder {
	builder = builder.Where(squirrel.Eq{
		"sr.company_id":  scope.CompanyID,
		"sr.entity_type": scope.EntityType,
	})

	if scope.AdTypeID != 0 {
		builder = builder.Where(squirrel.Eq{"sr.ad_type_id": scope.AdTypeID})
	}

	if scope.EntityIDs != nil {
		builder = builder.Where(squirrel.Eq{"sr.entity_id": scope.EntityIDs})
	}

	if scope.ParentID != nil {
		if ref, ok := entityTableFor(scope.EntityType); ok && ref.ParentColumn != "" {
			builder = builder.Where(squirrel.Expr(
				fmt.Sprintf("sr.entity_id IN (SELECT id FROM %s WHERE %s = ?)", ref.Table, ref.ParentColumn),
				*scope.ParentID,
			))
		}
	}

	if withRange {
		builder = builder.
			Where(squirrel.GtOrEq{"sr.start_date": scope.Range.StartDate.Format(time.DateOnly)}).
			Where(squirrel.LtOrEq{"sr.start_date": scope.Range.EndDate.Format(time.DateOnly)})
	}

	return builder
}

// scanMetricColumns escaneia o período (quando presente) e as colunas do
// pivot na ordem definida por BaseMetricSpecs.
func scanMetricColumns(scan func(...any) error, period *string, totals *domain.MetricTotals) error {
	targets := make([]any, 0, len(domain.BaseMetricSpecs)+1)
	if period != nil {
		targets = append(targets, period)
	}

	targets = append(targets,
		&totals.Clicks,
		&totals.Impressions,
		&totals.Cost,
		&totals.Purchases7d,
		&totals.Sales7d,
		&totals.ClickThroughRate,
		&totals.CostPerClick,
		&totals.ConversionRate7d,
		&totals.RoasClicks7d,
		&totals.AcosClicks7d,
	)

	return scan(targets...)
}
