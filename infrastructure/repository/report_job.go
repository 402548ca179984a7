package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/utils"
)

const reportJobsTable = "report_jobs rj"

const reportJobColumns = "rj.id, rj.company_id, rj.report_id, rj.report_type, rj.ad_type_id, rj.start_date, rj.end_date, rj.status, rj.attempts, rj.last_attempt_at, rj.processed_at, rj.error_message, rj.created_at, rj.updated_at"

type ReportJobRepository interface {
	Create(job *domain.ReportJob) (*domain.ReportJob, error)
	GetByID(id string) (*domain.ReportJob, error)
	GetByExternalReportID(reportID string) (*domain.ReportJob, error)
	ListByStatus(statuses []domain.ReportStatus) ([]*domain.ReportJob, error)
	Update(job *domain.ReportJob) error
}

type reportJobRepository struct {
	conn *postgres.Connection
}

func NewReportJobRepository(conn *postgres.Connection) ReportJobRepository {
	return &reportJobRepository{
		conn: conn,
	}
}

func (r *reportJobRepository) Create(job *domain.ReportJob) (*domain.ReportJob, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do job de relatório: %w", err)
	}
	job.ID = id
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	query, args, err := squirrel.StatementBuilder.
		Insert("report_jobs").
		Columns("id", "company_id", "report_id", "report_type", "ad_type_id", "start_date", "end_date", "status", "attempts").
		Values(
			job.ID,
			job.CompanyID,
			job.ReportID,
			job.ReportType,
			job.AdTypeID,
			job.StartDate.Format(time.DateOnly),
			job.EndDate.Format(time.DateOnly),
			job.Status,
			job.Attempts,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir job de relatório: %w", err)
	}

	return job, nil
}

func (r *reportJobRepository) GetByID(id string) (*domain.ReportJob, error) {
	return r.getByPredicate(squirrel.Eq{"rj.id": id})
}

// GetByExternalReportID busca o job pelo ID externo do relatório, usado no
// curto-circuito de relatórios duplicados.
func (r *reportJobRepository) GetByExternalReportID(reportID string) (*domain.ReportJob, error) {
	return r.getByPredicate(squirrel.Eq{"rj.report_id": reportID})
}

func (r *reportJobRepository) getByPredicate(predicate squirrel.Eq) (*domain.ReportJob, error) {
	query, args, err := squirrel.
		Select(reportJobColumns).
		From(reportJobsTable).
		Where(predicate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	job, err := scanReportJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear job de relatório: %w", err)
	}

	return job, nil
}

func (r *reportJobRepository) ListByStatus(statuses []domain.ReportStatus) ([]*domain.ReportJob, error) {
	query, args, err := squirrel.
		Select(reportJobColumns).
		From(reportJobsTable).
		Where(squirrel.Eq{"rj.status": statuses}).
		OrderBy("rj.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.ReportJob, 0)
	for rows.Next() {
		job, err := scanReportJob(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear job de relatório: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return jobs, nil
}

func (r *reportJobRepository) Update(job *domain.ReportJob) error {
	query, args, err := squirrel.StatementBuilder.
		Update("report_jobs").
		Set("report_id", job.ReportID).
		Set("status", job.Status).
		Set("attempts", job.Attempts).
		Set("last_attempt_at", job.LastAttemptAt).
		Set("processed_at", job.ProcessedAt).
		Set("error_message", job.ErrorMessage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": job.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar job de relatório: %w", err)
	}

	return nil
}

func scanReportJob(scan func(...any) error) (*domain.ReportJob, error) {
	job := &domain.ReportJob{}
	err := scan(
		&job.ID,
		&job.CompanyID,
		&job.ReportID,
		&job.ReportType,
		&job.AdTypeID,
		&job.StartDate,
		&job.EndDate,
		&job.Status,
		&job.Attempts,
		&job.LastAttemptAt,
		&job.ProcessedAt,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}
