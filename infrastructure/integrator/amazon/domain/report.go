package amazondomain

// ReportConfiguration é a configuração enviada no pedido de geração de
// relatório: produto de anúncio, colunas, agrupamento e formato.
type ReportConfiguration struct {
	AdProduct    string   `json:"adProduct"`
	GroupBy      []string `json:"groupBy"`
	Columns      []string `json:"columns"`
	ReportTypeID string   `json:"reportTypeId"`
	TimeUnit     string   `json:"timeUnit"`
	Format       string   `json:"format"`
}

// ReportRequest é o corpo do POST /reporting/reports
type ReportRequest struct {
	Name          string              `json:"name"`
	StartDate     string              `json:"startDate"`
	EndDate       string              `json:"endDate"`
	Configuration ReportConfiguration `json:"configuration"`
}

// Status externo do relatório assíncrono
const (
	ReportStatusProcessing = "PROCESSING"
	ReportStatusCompleted  = "COMPLETED"
	ReportStatusFailure    = "FAILURE"
)

// ReportResponse é a resposta do pedido e do polling de um relatório
type ReportResponse struct {
	ReportID      string `json:"reportId"`
	Status        string `json:"status"`
	URL           string `json:"url,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
}

// ReportRow é uma linha decodificada do arquivo de relatório baixado.
// As colunas variam por tipo de relatório, por isso o mapa genérico.
type ReportRow map[string]any
