package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/usecases/reporting"
)

// ReportPollConfig representa a configuração do agendador de polling de relatórios
type ReportPollConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
}

// ReportPollService gerencia o agendamento do polling dos relatórios
// assíncronos pendentes na API externa
type ReportPollService struct {
	scheduler           *gocron.Scheduler
	config              ReportPollConfig
	reporter            reporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewReportPollService cria uma nova instância do serviço de polling de relatórios
func NewReportPollService(reporter reporting.Reporter, appConfig *config.Config) *ReportPollService {
	pollConfig := ReportPollConfig{
		CronSchedule:        appConfig.ReportSync.CronSchedule,
		RequestDelaySeconds: appConfig.ReportSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.ReportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         pollConfig.CronSchedule,
		"request_delay_seconds": pollConfig.RequestDelaySeconds,
		"sync_enabled":          pollConfig.SyncEnabled,
	}).Info("Configuração do agendador de polling de relatórios carregada")

	return &ReportPollService{
		scheduler:   scheduler,
		config:      pollConfig,
		reporter:    reporter,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *ReportPollService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Polling de relatórios desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de polling de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.pollPendingReports(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar polling de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de polling de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// pollPendingReports faz uma rodada de polling nos relatórios pendentes.
// Rodadas sobrepostas são ignoradas: no máximo uma em andamento.
func (s *ReportPollService) pollPendingReports(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Polling de relatórios já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando rodada de polling dos relatórios pendentes")

	if err := s.reporter.ProcessPending(ctx); err != nil {
		logrus.WithError(err).Error("Erro na rodada de polling de relatórios")
		return
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
	}).Info("Rodada de polling de relatórios concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma rodada de polling de relatórios
func (s *ReportPollService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Polling de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando rodada manual de polling de relatórios")
	go s.pollPendingReports(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ReportPollService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
