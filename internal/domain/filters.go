package domain

// FilterType define o comportamento de um filtro genérico de listagem
type FilterType string

const (
	FilterTypeSelect FilterType = "select"
	FilterTypeNumber FilterType = "number"
	FilterTypeDate   FilterType = "date"
)

// SortDirectionDefault é o sentinela que significa "sem ordenação explícita"
const SortDirectionDefault = "default"

// Filter é um predicado genérico aplicado sobre uma coluna lógica.
// Filtros select comparam por igualdade exata; filtros number e date aplicam
// intervalo inclusivo [From, To], com qualquer um dos limites opcional.
type Filter struct {
	Type  FilterType `json:"type"`
	Value string     `json:"value,omitempty"`
	From  *string    `json:"from,omitempty"`
	To    *string    `json:"to,omitempty"`
}

// SortSpec descreve a ordenação pedida pelo chamador
type SortSpec struct {
	OrderBy        string `json:"order_by"`
	OrderDirection string `json:"order_direction"`
}

// FilterSpec é a especificação completa de filtro/ordenação de uma listagem
type FilterSpec struct {
	SearchQuery string            `json:"search_query,omitempty"`
	Filters     map[string]Filter `json:"filters,omitempty"`
	Sort        *SortSpec         `json:"sort,omitempty"`
}
