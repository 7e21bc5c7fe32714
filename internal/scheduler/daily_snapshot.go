package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-analytics-api/internal/config"
	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/internal/usecases/reporting"
)

// DailySnapshotConfig representa a configuração do agendador de snapshots
type DailySnapshotConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
}

// DailySnapshotService pré-calcula periodicamente o pacote de analytics dos
// últimos dias e mantém o snapshot mais recente em memória para o dashboard.
// O snapshot é um atalho de leitura, nunca persistido.
type DailySnapshotService struct {
	scheduler       *gocron.Scheduler
	config          DailySnapshotConfig
	reporter        reporting.Reporter
	snapshotRunning bool
	snapshotMutex   sync.Mutex
	lastSnapshot    *domain.AnalyticsReport
	lastRunAt       time.Time
}

// NewDailySnapshotService cria uma nova instância do serviço de snapshots
func NewDailySnapshotService(
	reporter reporting.Reporter,
	appConfig *config.Config,
) *DailySnapshotService {
	snapshotConfig := DailySnapshotConfig{
		CronSchedule: appConfig.SnapshotSync.CronSchedule,
		LookbackDays: appConfig.SnapshotSync.LookbackDays,
		Enabled:      appConfig.SnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
		"lookback_days": snapshotConfig.LookbackDays,
		"enabled":       snapshotConfig.Enabled,
	}).Info("Configuração do agendador de snapshots de analytics carregada")

	return &DailySnapshotService{
		scheduler: scheduler,
		config:    snapshotConfig,
		reporter:  reporter,
	}
}

// Start inicia o agendador
func (s *DailySnapshotService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Snapshot diário de analytics desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de analytics")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSnapshot(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot de analytics: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de analytics")
		s.scheduler.Stop()
	}()

	return nil
}

// Latest retorna o snapshot mais recente, ou nil se nenhum foi calculado.
func (s *DailySnapshotService) Latest() *domain.AnalyticsReport {
	s.snapshotMutex.Lock()
	defer s.snapshotMutex.Unlock()
	return s.lastSnapshot
}

// runSnapshot calcula o snapshot dos últimos LookbackDays dias.
func (s *DailySnapshotService) runSnapshot(ctx context.Context) {
	s.snapshotMutex.Lock()
	if s.snapshotRunning {
		s.snapshotMutex.Unlock()
		logrus.Info("Snapshot de analytics já em andamento, ignorando")
		return
	}
	s.snapshotRunning = true
	s.snapshotMutex.Unlock()

	defer func() {
		s.snapshotMutex.Lock()
		s.snapshotRunning = false
		s.snapshotMutex.Unlock()
	}()

	startTime := time.Now()
	startDate := startTime.AddDate(0, 0, -s.config.LookbackDays)
	endDate := startTime

	filters := &domain.ReportFilters{
		StartDate: &startDate,
		EndDate:   &endDate,
	}

	report, err := s.reporter.AnalyticsByRange(ctx, filters)
	if err != nil {
		logrus.WithError(err).Error("Erro ao calcular snapshot de analytics")
		return
	}

	s.snapshotMutex.Lock()
	s.lastSnapshot = report
	s.lastRunAt = startTime
	s.snapshotMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"report_id":   report.ReportID,
		"degraded":    report.Degraded,
		"total_sales": report.Analytics.Statistics.TotalSales,
		"duration":    time.Since(startTime).String(),
	}).Info("Snapshot de analytics calculado com sucesso")
}
