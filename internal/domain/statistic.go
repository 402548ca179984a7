package domain

import "time"

// StatisticRecord agrupa um conjunto de valores de métrica para uma entidade,
// produto de anúncio e intervalo de datas, vinculado ao relatório que o gerou.
// As linhas são de propriedade exclusiva do caminho de ingestão que as criou.
type StatisticRecord struct {
	ID         string     `json:"id"`
	CompanyID  int64      `json:"company_id"`
	ReportID   *string    `json:"report_id"`
	EntityID   string     `json:"entity_id"`
	EntityType EntityType `json:"entity_type"`
	AdTypeID   AdTypeID   `json:"ad_type_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	CreatedAt  time.Time  `json:"created_at"`
}

// MetricRecord liga um StatisticRecord a exatamente um valor tipado.
// O par (StatisticID, MetricDefinitionID) é único: gravações repetidas
// atualizam o valor no lugar.
type MetricRecord struct {
	ID                 string      `json:"id"`
	StatisticID        string      `json:"statistic_id"`
	MetricDefinitionID int64       `json:"metric_definition_id"`
	Value              MetricValue `json:"value"`
}
