package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/internal/usecases/reporting"
)

// fakeReporter conta as rodadas de polling e segura a execução quando pedido
type fakeReporter struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (f *fakeReporter) ProcessPending(_ context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	return nil
}

func (f *fakeReporter) GenerateReport(_ context.Context, _ domain.CompanyPolicy, _ reporting.GenerateInput) (*domain.ReportJob, error) {
	return nil, nil
}

func (f *fakeReporter) GetReport(_ context.Context, _ domain.CompanyPolicy, _ string) (*domain.ReportJob, error) {
	return nil, nil
}

func (f *fakeReporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestReportPollService_PollPendingReports(t *testing.T) {
	reporter := &fakeReporter{}
	service := &ReportPollService{
		config:   ReportPollConfig{SyncEnabled: true},
		reporter: reporter,
	}

	service.pollPendingReports(context.Background())

	assert.Equal(t, 1, reporter.callCount())
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestReportPollService_OverlappingRoundsIgnored(t *testing.T) {
	reporter := &fakeReporter{release: make(chan struct{})}
	service := &ReportPollService{
		config:   ReportPollConfig{SyncEnabled: true},
		reporter: reporter,
	}

	done := make(chan struct{})
	go func() {
		service.pollPendingReports(context.Background())
		close(done)
	}()

	// Esperar a primeira rodada adquirir o guard
	assert.Eventually(t, func() bool {
		return reporter.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Rodada sobreposta deve ser ignorada enquanto a primeira roda
	service.pollPendingReports(context.Background())
	assert.Equal(t, 1, reporter.callCount())

	close(reporter.release)
	<-done
}

func TestReportPollService_GetStatus(t *testing.T) {
	service := &ReportPollService{
		config: ReportPollConfig{
			SyncEnabled:         true,
			CronSchedule:        "*/10 * * * *",
			RequestDelaySeconds: 2,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "*/10 * * * *", status["sync_cron"])
	assert.Equal(t, 2, status["sync_request_delay_s"])
}
