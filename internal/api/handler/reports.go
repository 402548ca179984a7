package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ads-performance-api/pkg/log"
	"github.com/vfg2006/ads-performance-api/pkg/middleware"
)

type GenerateReportRequest struct {
	ReportType string `json:"report_type"`
	AdTypeID   int    `json:"ad_type_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// GenerateReport pede a geração assíncrona de um relatório de métricas na
// API externa. Pedidos repetidos para a mesma janela convergem para o mesmo
// relatório pelo caminho de detecção de duplicados.
func GenerateReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req GenerateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithField("error", err.Error()).Warn("reports: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		startDate, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": req.StartDate,
				"error":      err.Error(),
			}).Warn("reports: invalid start_date")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida", nil)
			return
		}

		endDate, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"end_date": req.EndDate,
				"error":    err.Error(),
			}).Warn("reports: invalid end_date")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida", nil)
			return
		}

		job, err := service.GenerateReport(r.Context(), userClaims.Policy(), reporting.GenerateInput{
			ReportType: req.ReportType,
			AdTypeID:   domain.AdTypeID(req.AdTypeID),
			StartDate:  startDate,
			EndDate:    endDate,
		})
		if err != nil {
			logger.WithFields(log.Fields{
				"report_type": req.ReportType,
				"error":       err.Error(),
			}).Error("reports: failed to generate report")

			switch {
			case domain.IsValidation(err):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrReportGeneration, err.Error(), nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"job_id":      job.ID,
			"report_type": job.ReportType,
			"status":      job.Status,
		}).Info("reports: report generation requested")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(job); err != nil {
			logger.WithField("error", err.Error()).Error("reports: failed to encode response")
		}
	})
}

// GetReport consulta o estado de um relatório. Jobs terminados devolvem o
// registro local sem tocar a API externa; jobs pendentes disparam um novo
// ciclo de polling.
func GetReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if jobID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório não fornecido", nil)
			return
		}

		job, err := service.GetReport(r.Context(), userClaims.Policy(), jobID)
		if err != nil {
			logger.WithFields(log.Fields{
				"job_id": jobID,
				"error":  err.Error(),
			}).Error("reports: failed to get report")

			if job == nil {
				apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Relatório não encontrado", nil)
				return
			}

			// Falha transitória de polling: devolve o job com o erro anotado
			apiErrors.WriteError(w, apiErrors.ErrReportGeneration, err.Error(), job)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(job); err != nil {
			logger.WithFields(log.Fields{
				"job_id": jobID,
				"error":  err.Error(),
			}).Error("reports: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
