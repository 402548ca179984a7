package domain

import (
	"time"

	"github.com/vfg2006/ads-performance-api/pkg/utils"
)

// Grouping é a granularidade de bucket escolhida para a série temporal
type Grouping string

const (
	GroupingDay      Grouping = "day"
	GroupingWeek     Grouping = "week"
	GroupingTwoWeeks Grouping = "twoWeeks"
	GroupingMonth    Grouping = "month"
)

// DateRange é um intervalo fechado de datas
type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Days retorna o total de dias cobertos pelo intervalo, inclusivo
func (r DateRange) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// LastDays cria um intervalo cobrindo os últimos n dias até hoje
func LastDays(n int) DateRange {
	today := time.Now().Truncate(24 * time.Hour)
	return DateRange{
		StartDate: today.AddDate(0, 0, -(n - 1)),
		EndDate:   today,
	}
}

// ResolveGrouping escolhe a granularidade do bucket a partir do total de dias
// do intervalo: até 31 dias por dia, até 90 por semana, até 180 por quinzena
// (aproximada pela chave de mês calendário) e acima disso por mês.
func ResolveGrouping(r DateRange) Grouping {
	days := r.Days()
	switch {
	case days <= 31:
		return GroupingDay
	case days <= 90:
		return GroupingWeek
	case days <= 180:
		return GroupingTwoWeeks
	default:
		return GroupingMonth
	}
}

// MetricTotals carrega o conjunto fixo de métricas base agregadas em um
// bucket ou no total geral. As razões derivadas são calculadas a partir das
// bases somadas, nunca da média das razões armazenadas.
type MetricTotals struct {
	Clicks           float64 `json:"clicks"`
	Impressions      float64 `json:"impressions"`
	Cost             float64 `json:"cost"`
	Purchases7d      float64 `json:"purchases7d"`
	Sales7d          float64 `json:"sales7d"`
	ClickThroughRate float64 `json:"clickThroughRate"`
	CostPerClick     float64 `json:"costPerClick"`
	ConversionRate7d float64 `json:"conversionRate7d"`
	RoasClicks7d     float64 `json:"roasClicks7d"`
	AcosClicks7d     float64 `json:"acosClicks7d"`
}

// DeriveRatios recalcula as razões dependentes a partir das bases somadas,
// protegendo todas as divisões contra divisor zero.
func (m *MetricTotals) DeriveRatios() {
	m.CostPerClick = 0
	if m.Clicks > 0 {
		m.CostPerClick = utils.RoundWithTwoDecimalPlace(m.Cost / m.Clicks)
	}

	m.AcosClicks7d = 0
	if m.Sales7d > 0 {
		m.AcosClicks7d = utils.RoundWithTwoDecimalPlace((m.Cost / m.Sales7d) * 100)
	}

	m.RoasClicks7d = 0
	if m.Cost > 0 {
		m.RoasClicks7d = utils.RoundWithTwoDecimalPlace(m.Sales7d / m.Cost)
	}

	m.ClickThroughRate = 0
	if m.Impressions > 0 {
		m.ClickThroughRate = utils.RoundWithTwoDecimalPlace((m.Clicks / m.Impressions) * 100)
	}

	m.ConversionRate7d = 0
	if m.Clicks > 0 {
		m.ConversionRate7d = utils.RoundWithTwoDecimalPlace((m.Purchases7d / m.Clicks) * 100)
	}
}

// TimeSeriesPoint é um bucket da série temporal com todas as métricas como colunas
type TimeSeriesPoint struct {
	Period string `json:"period"`
	MetricTotals
}

// AggregatedInsights é o resultado da agregação: série por bucket, total
// geral e a granularidade aplicada.
type AggregatedInsights struct {
	TimeSeries []TimeSeriesPoint `json:"time_series"`
	Totals     MetricTotals      `json:"totals"`
	Grouping   Grouping          `json:"grouping"`
}

// EmptyInsights monta o resultado vazio para um escopo sem registros:
// totais zerados, série vazia e a granularidade calculada do intervalo
func EmptyInsights(r DateRange) *AggregatedInsights {
	return &AggregatedInsights{
		TimeSeries: []TimeSeriesPoint{},
		Totals:     MetricTotals{},
		Grouping:   ResolveGrouping(r),
	}
}

// MetricAggregation é a função de agregação aplicada a uma métrica base
type MetricAggregation string

const (
	AggregationSum MetricAggregation = "SUM"
	AggregationAvg MetricAggregation = "AVG"
)

// MetricSpec liga o nome de uma métrica base à sua agregação
type MetricSpec struct {
	Name        string
	Aggregation MetricAggregation
}

// BaseMetricSpecs é a tabela estática do conjunto fixo de métricas base e
// suas agregações: contagens e valores monetários são somados, razões já
// armazenadas são promediadas. A ordem define as colunas do pivot.
var BaseMetricSpecs = []MetricSpec{
	{Name: "clicks", Aggregation: AggregationSum},
	{Name: "impressions", Aggregation: AggregationSum},
	{Name: "cost", Aggregation: AggregationSum},
	{Name: "purchases7d", Aggregation: AggregationSum},
	{Name: "sales7d", Aggregation: AggregationSum},
	{Name: "clickThroughRate", Aggregation: AggregationAvg},
	{Name: "costPerClick", Aggregation: AggregationAvg},
	{Name: "conversionRate7d", Aggregation: AggregationAvg},
	{Name: "roasClicks7d", Aggregation: AggregationAvg},
	{Name: "acosClicks7d", Aggregation: AggregationAvg},
}

// AggregationFor resolve a agregação configurada para uma métrica base.
// Métricas fora da tabela estática são somadas.
func AggregationFor(name string) MetricAggregation {
	for _, spec := range BaseMetricSpecs {
		if spec.Name == name {
			return spec.Aggregation
		}
	}
	return AggregationSum
}
