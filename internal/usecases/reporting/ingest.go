package reporting

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/recording"
)

// ingest grava as linhas do relatório baixado no armazém de métricas. As
// linhas são agrupadas por data e processadas em lotes de datas; uma célula
// ilegível ou fora do catálogo pula a célula, nunca o relatório inteiro.
func (s *Service) ingest(ctx context.Context, job *domain.ReportJob, rows []amazondomain.ReportRow) error {
	def, err := definitionFor(job.ReportType)
	if err != nil {
		return err
	}

	byDate := groupRowsByDate(rows)

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	batchSize := s.cfg.ReportSync.IngestionBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	ingested := 0
	skipped := 0
	for start := 0; start < len(dates); start += batchSize {
		end := start + batchSize
		if end > len(dates) {
			end = len(dates)
		}

		for _, date := range dates[start:end] {
			day, err := time.Parse(time.DateOnly, date)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"job_id": job.ID,
					"date":   date,
				}).Warn("reports: skipping rows with unreadable date")
				skipped += len(byDate[date])
				continue
			}

			for _, row := range byDate[date] {
				ok, bad := s.ingestRow(ctx, job, def, day, row)
				ingested += ok
				skipped += bad
			}
		}

		logrus.WithFields(logrus.Fields{
			"job_id":  job.ID,
			"batch":   start/batchSize + 1,
			"dates":   end - start,
			"written": ingested,
		}).Debug("reports: ingestion batch flushed")
	}

	logrus.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"rows":     len(rows),
		"written":  ingested,
		"skipped":  skipped,
	}).Info("reports: ingestion finished")

	return nil
}

// ingestRow grava as células de métrica de uma linha e devolve quantas
// entraram e quantas foram puladas.
func (s *Service) ingestRow(ctx context.Context, job *domain.ReportJob, def reportDefinition, day time.Time, row amazondomain.ReportRow) (int, int) {
	entityID := cellString(row[def.EntityIDColumn])
	if entityID == "" {
		logrus.WithFields(logrus.Fields{
			"job_id": job.ID,
			"column": def.EntityIDColumn,
		}).Warn("reports: skipping row without entity id")
		return 0, len(def.MetricColumns)
	}

	policy := domain.CompanyPolicy{CompanyID: job.CompanyID}

	ingested := 0
	skipped := 0
	for column, metric := range def.MetricColumns {
		cell, ok := row[column]
		if !ok {
			continue
		}

		rawValue, err := s.normalizeCell(metric, def.EntityType, job.AdTypeID, cell)
		if err != nil {
			if domain.IsUnknownMetric(err) {
				logrus.WithFields(logrus.Fields{
					"job_id": job.ID,
					"metric": metric,
				}).Debug("reports: skipping cell outside metric catalog")
			} else {
				logrus.WithFields(logrus.Fields{
					"job_id": job.ID,
					"metric": metric,
					"error":  err.Error(),
				}).Warn("reports: skipping unreadable cell")
			}
			skipped++
			continue
		}

		_, err = s.recorder.RecordValue(ctx, policy, recording.RecordInput{
			Metric:     metric,
			EntityID:   entityID,
			EntityType: def.EntityType,
			AdTypeID:   job.AdTypeID,
			ReportID:   &job.ID,
			StartDate:  day,
			EndDate:    day,
			RawValue:   rawValue,
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"job_id":    job.ID,
				"metric":    metric,
				"entity_id": entityID,
				"error":     err.Error(),
			}).Warn("reports: failed to record cell")
			skipped++
			continue
		}
		ingested++
	}

	return ingested, skipped
}

// normalizeCell converte a célula para o valor bruto esperado pelo gravador.
// Percentuais chegam do relatório como fração e o gravador espera a forma
// percentual, então a fração é multiplicada de volta antes da gravação.
func (s *Service) normalizeCell(metric string, entityType domain.EntityType, adTypeID domain.AdTypeID, cell any) (string, error) {
	def, err := s.recorder.LookupDefinition(metric, entityType, adTypeID)
	if err != nil {
		return "", err
	}

	if number, ok := cellNumber(cell); ok {
		if def.ValueType == domain.ValueTypePercentage {
			number *= 100
		}
		return strconv.FormatFloat(number, 'f', -1, 64), nil
	}

	return cellString(cell), nil
}

// groupRowsByDate indexa as linhas pela coluna de data
func groupRowsByDate(rows []amazondomain.ReportRow) map[string][]amazondomain.ReportRow {
	byDate := make(map[string][]amazondomain.ReportRow)
	for _, row := range rows {
		date := cellString(row[reportDateColumn])
		byDate[date] = append(byDate[date], row)
	}
	return byDate
}

func cellNumber(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
