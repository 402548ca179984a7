package filtering

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func testEngine() *Engine {
	return NewEngine(FieldMapping{
		Columns: map[string]string{
			"state":      "c.state",
			"budget":     "c.budget",
			"start_date": "c.start_date",
		},
		SearchColumns: []string{"c.name"},
		Sortable: map[string]string{
			"name":   "c.name",
			"budget": "c.budget",
		},
	})
}

func baseQuery() squirrel.SelectBuilder {
	return squirrel.Select("c.id").From("campaigns c")
}

func testScope() MetricScope {
	return MetricScope{
		CompanyID:    42,
		EntityType:   domain.EntityTypeCampaign,
		EntityColumn: "c.id",
	}
}

func TestEngine_Apply_SelectFilter(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"state": {Type: domain.FilterTypeSelect, Value: "ENABLED"},
		},
	}, testScope())
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "c.state = ?")
	assert.Equal(t, []any{"ENABLED"}, args)
}

func TestEngine_Apply_NumberRangeInclusive(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"budget": {Type: domain.FilterTypeNumber, From: stringPtr("100"), To: stringPtr("500")},
		},
	}, testScope())
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "c.budget >= ?")
	assert.Contains(t, query, "c.budget <= ?")
	assert.ElementsMatch(t, []any{100.0, 500.0}, args)
}

func TestEngine_Apply_OpenEndedDateRange(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"start_date": {Type: domain.FilterTypeDate, From: stringPtr("2025-03-01")},
		},
	}, testScope())
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "c.start_date >= ?")
	assert.NotContains(t, query, "c.start_date <= ?")
	assert.Equal(t, []any{"2025-03-01"}, args)
}

func TestEngine_Apply_UnmappedKeyPassesThrough(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"targeting_type": {Type: domain.FilterTypeSelect, Value: "AUTO"},
		},
	}, testScope())
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	// Sem entrada no mapa, o nome lógico vira a própria coluna
	assert.Contains(t, query, "targeting_type = ?")
	assert.Equal(t, []any{"AUTO"}, args)
}

func TestEngine_Apply_SearchQuery(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		SearchQuery: "verão",
	}, testScope())
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "c.name ILIKE ?")
	assert.Equal(t, []any{"%verão%"}, args)
}

func TestEngine_Apply_MetricFilterBuildsCorrelatedSubquery(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"metric:clicks": {Type: domain.FilterTypeNumber, From: stringPtr("1000")},
		},
	}, testScope())
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "c.id IN (")
	assert.Contains(t, query, "FROM statistic_records sr")
	assert.Contains(t, query, "md.name = ?")
	// clicks é uma métrica somada
	assert.Contains(t, query, "HAVING SUM(mv.numeric_value) >= ?")
	assert.Equal(t, []any{int64(42), domain.EntityTypeCampaign, "clicks", 1000.0}, args)
}

func TestEngine_Apply_MetricFilterUsesConfiguredAggregation(t *testing.T) {
	engine := testEngine()

	builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"metric:acosClicks7d": {Type: domain.FilterTypeNumber, To: stringPtr("35")},
		},
	}, testScope())
	require.NoError(t, err)

	query, _, err := builder.ToSql()
	require.NoError(t, err)
	// acosClicks7d é uma razão armazenada, promediada em vez de somada
	assert.Contains(t, query, "HAVING AVG(mv.numeric_value) <= ?")
}

func TestEngine_Apply_Sort(t *testing.T) {
	engine := testEngine()

	t.Run("campo permitido", func(t *testing.T) {
		builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
			Sort: &domain.SortSpec{OrderBy: "budget", OrderDirection: "desc"},
		}, testScope())
		require.NoError(t, err)

		query, _, err := builder.ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, "ORDER BY c.budget DESC")
	})

	t.Run("sentinela default é ignorado em silêncio", func(t *testing.T) {
		builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
			Sort: &domain.SortSpec{OrderBy: domain.SortDirectionDefault},
		}, testScope())
		require.NoError(t, err)

		query, _, err := builder.ToSql()
		require.NoError(t, err)
		assert.NotContains(t, query, "ORDER BY")
	})

	t.Run("campo fora da lista de permitidos é ignorado em silêncio", func(t *testing.T) {
		builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
			Sort: &domain.SortSpec{OrderBy: "secret_column", OrderDirection: "asc"},
		}, testScope())
		require.NoError(t, err)

		query, _, err := builder.ToSql()
		require.NoError(t, err)
		assert.NotContains(t, query, "ORDER BY")
	})

	t.Run("direção default significa sem ordenação", func(t *testing.T) {
		builder, err := engine.Apply(baseQuery(), &domain.FilterSpec{
			Sort: &domain.SortSpec{OrderBy: "budget", OrderDirection: domain.SortDirectionDefault},
		}, testScope())
		require.NoError(t, err)

		query, _, err := builder.ToSql()
		require.NoError(t, err)
		assert.NotContains(t, query, "ORDER BY")
	})

	t.Run("direção inválida é rejeitada", func(t *testing.T) {
		_, err := engine.Apply(baseQuery(), &domain.FilterSpec{
			Sort: &domain.SortSpec{OrderBy: "budget", OrderDirection: "sideways"},
		}, testScope())

		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestEngine_Apply_ValidationErrors(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name string
		spec *domain.FilterSpec
	}{
		{
			name: "limite numérico ilegível",
			spec: &domain.FilterSpec{
				Filters: map[string]domain.Filter{
					"budget": {Type: domain.FilterTypeNumber, From: stringPtr("muito")},
				},
			},
		},
		{
			name: "data ilegível",
			spec: &domain.FilterSpec{
				Filters: map[string]domain.Filter{
					"start_date": {Type: domain.FilterTypeDate, To: stringPtr("03/2025")},
				},
			},
		},
		{
			name: "filtro de métrica sem limites",
			spec: &domain.FilterSpec{
				Filters: map[string]domain.Filter{
					"metric:clicks": {Type: domain.FilterTypeNumber},
				},
			},
		},
		{
			name: "filtro de métrica com tipo errado",
			spec: &domain.FilterSpec{
				Filters: map[string]domain.Filter{
					"metric:clicks": {Type: domain.FilterTypeSelect, Value: "1000"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Apply(baseQuery(), tt.spec, testScope())
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}
