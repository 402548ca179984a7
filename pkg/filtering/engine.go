package filtering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// metricFilterPrefix marca filtros aplicados sobre métricas agregadas em vez
// de colunas da própria tabela da listagem
const metricFilterPrefix = "metric:"

// FieldMapping liga os nomes lógicos expostos ao chamador às colunas físicas
// da query de listagem. Nomes fora do mapa passam adiante sem tradução, como
// coluna literal.
type FieldMapping struct {
	Columns       map[string]string
	SearchColumns []string
	Sortable      map[string]string
}

// MetricScope delimita a subconsulta correlacionada dos filtros de métrica:
// a empresa e o tipo de entidade da listagem, e a coluna externa que carrega
// o ID da entidade.
type MetricScope struct {
	CompanyID    int64
	EntityType   domain.EntityType
	EntityColumn string
}

// Engine aplica uma especificação genérica de filtro/ordenação sobre uma
// query de listagem em construção.
type Engine struct {
	mapping FieldMapping
}

func NewEngine(mapping FieldMapping) *Engine {
	return &Engine{mapping: mapping}
}

// Apply valida a especificação e devolve a query com os predicados, a busca
// textual e a ordenação aplicados. Entrada malformada devolve ValidationError
// sem executar nada.
func (e *Engine) Apply(builder squirrel.SelectBuilder, spec *domain.FilterSpec, scope MetricScope) (squirrel.SelectBuilder, error) {
	if spec == nil {
		return builder, nil
	}

	if spec.SearchQuery != "" && len(e.mapping.SearchColumns) > 0 {
		builder = e.applySearch(builder, spec.SearchQuery)
	}

	for name, filter := range spec.Filters {
		var err error
		if strings.HasPrefix(name, metricFilterPrefix) {
			builder, err = e.applyMetricFilter(builder, strings.TrimPrefix(name, metricFilterPrefix), filter, scope)
		} else {
			builder, err = e.applyColumnFilter(builder, name, filter)
		}
		if err != nil {
			return builder, err
		}
	}

	return e.applySort(builder, spec.Sort)
}

func (e *Engine) applySearch(builder squirrel.SelectBuilder, query string) squirrel.SelectBuilder {
	pattern := fmt.Sprintf("%%%s%%", query)

	terms := make(squirrel.Or, 0, len(e.mapping.SearchColumns))
	for _, column := range e.mapping.SearchColumns {
		terms = append(terms, squirrel.ILike{column: pattern})
	}

	return builder.Where(terms)
}

func (e *Engine) applyColumnFilter(builder squirrel.SelectBuilder, name string, filter domain.Filter) (squirrel.SelectBuilder, error) {
	// Nomes sem entrada no mapa são usados como coluna literal
	column, ok := e.mapping.Columns[name]
	if !ok {
		column = name
	}

	switch filter.Type {
	case domain.FilterTypeSelect:
		if filter.Value == "" {
			return builder, &domain.ValidationError{Field: name, Message: "filtro select exige um valor"}
		}
		return builder.Where(squirrel.Eq{column: filter.Value}), nil

	case domain.FilterTypeNumber:
		from, to, err := parseNumberBounds(name, filter)
		if err != nil {
			return builder, err
		}
		if from != nil {
			builder = builder.Where(squirrel.GtOrEq{column: *from})
		}
		if to != nil {
			builder = builder.Where(squirrel.LtOrEq{column: *to})
		}
		return builder, nil

	case domain.FilterTypeDate:
		from, to, err := parseDateBounds(name, filter)
		if err != nil {
			return builder, err
		}
		if from != nil {
			builder = builder.Where(squirrel.GtOrEq{column: *from})
		}
		if to != nil {
			builder = builder.Where(squirrel.LtOrEq{column: *to})
		}
		return builder, nil

	default:
		return builder, &domain.ValidationError{Field: name, Message: fmt.Sprintf("tipo de filtro desconhecido: %s", filter.Type)}
	}
}

// applyMetricFilter restringe a listagem às entidades cuja métrica agregada
// cruza o limiar pedido, via subconsulta correlacionada sobre o armazém de
// valores com a agregação configurada para a métrica.
func (e *Engine) applyMetricFilter(builder squirrel.SelectBuilder, metric string, filter domain.Filter, scope MetricScope) (squirrel.SelectBuilder, error) {
	if filter.Type != domain.FilterTypeNumber {
		return builder, &domain.ValidationError{Field: metricFilterPrefix + metric, Message: "filtros de métrica exigem o tipo number"}
	}

	from, to, err := parseNumberBounds(metricFilterPrefix+metric, filter)
	if err != nil {
		return builder, err
	}
	if from == nil && to == nil {
		return builder, &domain.ValidationError{Field: metricFilterPrefix + metric, Message: "informe ao menos um limite"}
	}

	aggregation := domain.AggregationFor(metric)

	having := make([]string, 0, 2)
	args := []any{scope.CompanyID, scope.EntityType, metric}
	if from != nil {
		having = append(having, fmt.Sprintf("%s(mv.numeric_value) >= ?", aggregation))
		args = append(args, *from)
	}
	if to != nil {
		having = append(having, fmt.Sprintf("%s(mv.numeric_value) <= ?", aggregation))
		args = append(args, *to)
	}

	subquery := fmt.Sprintf(`%s IN (
		SELECT sr.entity_id
		FROM statistic_records sr
		JOIN metric_records mr ON mr.statistic_id = sr.id
		JOIN metric_definitions md ON md.id = mr.metric_definition_id
		JOIN metric_values mv ON mv.metric_id = mr.id
		WHERE sr.company_id = ? AND sr.entity_type = ? AND md.name = ?
		GROUP BY sr.entity_id
		HAVING %s
	)`, scope.EntityColumn, strings.Join(having, " AND "))

	return builder.Where(squirrel.Expr(subquery, args...)), nil
}

// applySort aplica a ordenação pedida. O sentinela "default" (no campo ou na
// direção) significa "sem ordenação explícita" e é ignorado em silêncio, assim
// como campos fora da lista de permitidos: a query segue sem ORDER BY.
func (e *Engine) applySort(builder squirrel.SelectBuilder, sort *domain.SortSpec) (squirrel.SelectBuilder, error) {
	if sort == nil || sort.OrderBy == "" || sort.OrderBy == domain.SortDirectionDefault {
		return builder, nil
	}

	column, ok := e.mapping.Sortable[sort.OrderBy]
	if !ok {
		return builder, nil
	}

	direction := strings.ToUpper(sort.OrderDirection)
	switch direction {
	case strings.ToUpper(domain.SortDirectionDefault):
		return builder, nil
	case "":
		direction = "ASC"
	case "ASC", "DESC":
	default:
		return builder, &domain.ValidationError{Field: sort.OrderBy, Message: fmt.Sprintf("direção de ordenação inválida: %s", sort.OrderDirection)}
	}

	return builder.OrderBy(fmt.Sprintf("%s %s", column, direction)), nil
}

func parseNumberBounds(field string, filter domain.Filter) (*float64, *float64, error) {
	parse := func(raw *string) (*float64, error) {
		if raw == nil {
			return nil, nil
		}
		n, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: field, Message: fmt.Sprintf("limite numérico inválido: %q", *raw)}
		}
		return &n, nil
	}

	from, err := parse(filter.From)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(filter.To)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func parseDateBounds(field string, filter domain.Filter) (*string, *string, error) {
	parse := func(raw *string) (*string, error) {
		if raw == nil {
			return nil, nil
		}
		if _, err := time.Parse(time.DateOnly, *raw); err != nil {
			return nil, &domain.ValidationError{Field: field, Message: fmt.Sprintf("data inválida: %q", *raw)}
		}
		return raw, nil
	}

	from, err := parse(filter.From)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(filter.To)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
