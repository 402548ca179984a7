package domain

import "time"

// ReportStatus é o estado do ciclo de vida de um relatório assíncrono
type ReportStatus string

const (
	// ReportStatusRequested indica que o job foi criado mas ainda não tem ID externo
	ReportStatusRequested ReportStatus = "requested"
	// ReportStatusPending indica que o relatório foi aceito pela API externa e aguarda geração
	ReportStatusPending ReportStatus = "pending"
	// ReportStatusCompleted indica que o relatório foi baixado e ingerido
	ReportStatusCompleted ReportStatus = "completed"
	// ReportStatusFailed indica que as tentativas se esgotaram
	ReportStatusFailed ReportStatus = "failed"
	// ReportStatusError é um estado transitório de polling: a falha foi
	// registrada mas o job pode ser consultado novamente com segurança
	ReportStatusError ReportStatus = "error"
)

// ReportJob acompanha a geração assíncrona de um relatório na API externa,
// do pedido à ingestão.
type ReportJob struct {
	ID            string       `json:"id"`
	CompanyID     int64        `json:"company_id"`
	ReportID      *string      `json:"report_id"`
	ReportType    string       `json:"report_type"`
	AdTypeID      AdTypeID     `json:"ad_type_id"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Status        ReportStatus `json:"status"`
	Attempts      int          `json:"attempts"`
	LastAttemptAt *time.Time   `json:"last_attempt_at"`
	ProcessedAt   *time.Time   `json:"processed_at"`
	ErrorMessage  *string      `json:"error_message"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Finished indica se o job chegou a um estado terminal
func (j *ReportJob) Finished() bool {
	return j.Status == ReportStatusCompleted || j.Status == ReportStatusFailed
}
