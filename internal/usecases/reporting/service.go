package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/amzclient"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/recording"
)

// GenerateInput descreve o pedido de geração de um relatório de métricas
type GenerateInput struct {
	ReportType string
	AdTypeID   domain.AdTypeID
	StartDate  time.Time
	EndDate    time.Time
}

// Reporter conduz o ciclo de vida dos relatórios assíncronos: pedido com
// retentativas, polling e ingestão.
type Reporter interface {
	GenerateReport(ctx context.Context, policy domain.CompanyPolicy, input GenerateInput) (*domain.ReportJob, error)
	GetReport(ctx context.Context, policy domain.CompanyPolicy, jobID string) (*domain.ReportJob, error)
	ProcessPending(ctx context.Context) error
}

// Service implementa a interface Reporter
type Service struct {
	cfg      *config.Config
	client   amzclient.Client
	jobs     repository.ReportJobRepository
	recorder recording.Recorder
	sleep    func(time.Duration)
}

// NewService cria uma nova instância do serviço de relatórios
func NewService(
	cfg *config.Config,
	client amzclient.Client,
	jobs repository.ReportJobRepository,
	recorder recording.Recorder,
) *Service {
	return &Service{
		cfg:      cfg,
		client:   client,
		jobs:     jobs,
		recorder: recorder,
		sleep:    time.Sleep,
	}
}

// GenerateReport cria o job local e pede a geração do relatório à API
// externa, com backoff exponencial entre as tentativas. Um pedido recusado
// por duplicidade reutiliza o ID externo do relatório já em andamento.
func (s *Service) GenerateReport(ctx context.Context, policy domain.CompanyPolicy, input GenerateInput) (*domain.ReportJob, error) {
	def, err := definitionFor(input.ReportType)
	if err != nil {
		return nil, err
	}

	job := &domain.ReportJob{
		CompanyID:  policy.CompanyID,
		ReportType: input.ReportType,
		AdTypeID:   input.AdTypeID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Status:     domain.ReportStatusRequested,
	}
	job, err = s.jobs.Create(job)
	if err != nil {
		return nil, err
	}

	request := amazondomain.ReportRequest{
		Name:      fmt.Sprintf("%s-%s", input.ReportType, input.StartDate.Format(time.DateOnly)),
		StartDate: input.StartDate.Format(time.DateOnly),
		EndDate:   input.EndDate.Format(time.DateOnly),
		Configuration: amazondomain.ReportConfiguration{
			AdProduct:    input.AdTypeID.AdProduct(),
			GroupBy:      def.GroupBy,
			Columns:      def.reportColumns(),
			ReportTypeID: def.externalTypeID(input.AdTypeID),
			TimeUnit:     "DAILY",
			Format:       "GZIP_JSON",
		},
	}

	maxRetries := s.cfg.ReportSync.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			s.sleep(s.backoff(attempt))
		}

		now := time.Now()
		job.Attempts++
		job.LastAttemptAt = &now

		reportID, err := s.client.RequestReport(ctx, request)
		if err == nil {
			job.ReportID = &reportID
			job.Status = domain.ReportStatusPending
			return job, s.jobs.Update(job)
		}

		var duplicate *amzclient.ErrDuplicateReport
		if errors.As(err, &duplicate) {
			logrus.WithFields(logrus.Fields{
				"job_id":    job.ID,
				"report_id": duplicate.ReportID,
			}).Info("reports: reusing in-flight duplicate report")
			job.ReportID = &duplicate.ReportID
			job.Status = domain.ReportStatusPending
			return job, s.jobs.Update(job)
		}

		lastErr = err
		logrus.WithFields(logrus.Fields{
			"job_id":  job.ID,
			"attempt": job.Attempts,
			"error":   err.Error(),
		}).Warn("reports: report request failed")
	}

	message := lastErr.Error()
	job.Status = domain.ReportStatusFailed
	job.ErrorMessage = &message
	if err := s.jobs.Update(job); err != nil {
		logrus.WithFields(logrus.Fields{
			"job_id": job.ID,
			"error":  err.Error(),
		}).Error("reports: failed to persist job failure")
	}

	return job, &domain.ReportGenerationError{
		ReportType: input.ReportType,
		Attempts:   job.Attempts,
		Err:        lastErr,
	}
}

// GetReport devolve o estado atual do job, fazendo uma rodada de polling na
// API externa quando o relatório ainda está em geração. Falhas de polling
// deixam o job em um estado transitório que pode ser consultado de novo.
func (s *Service) GetReport(ctx context.Context, policy domain.CompanyPolicy, jobID string) (*domain.ReportJob, error) {
	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("job de relatório não encontrado: %s", jobID)
	}
	if job.CompanyID != policy.CompanyID {
		return nil, fmt.Errorf("job de relatório não encontrado: %s", jobID)
	}

	if job.Finished() || job.ReportID == nil {
		return job, nil
	}

	return s.poll(ctx, job)
}

// ProcessPending percorre os jobs aguardando geração e faz uma rodada de
// polling em cada um, com um intervalo entre requisições para não estourar o
// limite da API externa.
func (s *Service) ProcessPending(ctx context.Context) error {
	jobs, err := s.jobs.ListByStatus([]domain.ReportStatus{
		domain.ReportStatusPending,
		domain.ReportStatusError,
	})
	if err != nil {
		return err
	}

	delay := time.Duration(s.cfg.ReportSync.RequestDelaySeconds) * time.Second
	for i, job := range jobs {
		if i > 0 && delay > 0 {
			s.sleep(delay)
		}

		if _, err := s.poll(ctx, job); err != nil {
			logrus.WithFields(logrus.Fields{
				"job_id": job.ID,
				"error":  err.Error(),
			}).Warn("reports: polling round failed")
		}
	}

	return nil
}

func (s *Service) poll(ctx context.Context, job *domain.ReportJob) (*domain.ReportJob, error) {
	if job.ReportID == nil {
		return job, nil
	}

	response, err := s.client.GetReport(ctx, *job.ReportID)
	if err != nil {
		return s.markTransientError(job, err)
	}

	switch response.Status {
	case amazondomain.ReportStatusCompleted:
		rows, err := s.client.DownloadReport(ctx, response.URL)
		if err != nil {
			return s.markTransientError(job, err)
		}

		if err := s.ingest(ctx, job, rows); err != nil {
			return s.markTransientError(job, err)
		}

		now := time.Now()
		job.Status = domain.ReportStatusCompleted
		job.ProcessedAt = &now
		job.ErrorMessage = nil
		return job, s.jobs.Update(job)

	case amazondomain.ReportStatusFailure:
		message := response.FailureReason
		if message == "" {
			message = "relatório recusado pela API externa"
		}
		job.Status = domain.ReportStatusFailed
		job.ErrorMessage = &message
		return job, s.jobs.Update(job)

	default:
		if job.Status != domain.ReportStatusPending {
			job.Status = domain.ReportStatusPending
			job.ErrorMessage = nil
			return job, s.jobs.Update(job)
		}
		return job, nil
	}
}

// markTransientError registra a falha sem encerrar o job: a próxima rodada
// de polling tenta de novo.
func (s *Service) markTransientError(job *domain.ReportJob, cause error) (*domain.ReportJob, error) {
	message := cause.Error()
	job.Status = domain.ReportStatusError
	job.ErrorMessage = &message

	if err := s.jobs.Update(job); err != nil {
		logrus.WithFields(logrus.Fields{
			"job_id": job.ID,
			"error":  err.Error(),
		}).Error("reports: failed to persist transient error")
	}

	return job, cause
}

// backoff calcula a espera antes da tentativa informada: inicial * 2^(n-1)
func (s *Service) backoff(attempt int) time.Duration {
	initial := s.cfg.ReportSync.InitialBackoffSecs
	if initial <= 0 {
		initial = 5
	}
	return time.Duration(initial<<(attempt-1)) * time.Second
}
