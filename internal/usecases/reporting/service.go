package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-analytics-api/infrastructure/analytics"
	"github.com/vfg2006/store-analytics-api/infrastructure/repository"
	"github.com/vfg2006/store-analytics-api/internal/config"
	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-analytics-api/pkg/utils"
)

// Service orquestra o caminho de analytics: extração das vendas, invocação
// do backend configurado e, em caso de falha, o caminho de contingência.
type Service struct {
	cfg       *config.Config
	salesRepo repository.SalesRepository
	backend   analytics.Backend
}

func NewService(
	cfg *config.Config,
	salesRepo repository.SalesRepository,
	backend analytics.Backend,
) Reporter {
	return &Service{
		cfg:       cfg,
		salesRepo: salesRepo,
		backend:   backend,
	}
}

func (s *Service) AnalyticsByRange(ctx context.Context, filters *domain.ReportFilters) (*domain.AnalyticsReport, error) {
	startDate, endDate := s.normalizeRange(filters)

	sales, err := s.salesRepo.GetByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao extrair vendas do período")
	}

	reportID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador do relatório")
	}

	report := &domain.AnalyticsReport{
		ReportID: reportID,
		Filters: &domain.ReportFilters{
			StartDate: &startDate,
			EndDate:   &endDate,
		},
	}

	// Intervalo sem vendas é um resultado vazio válido, não um erro — e não
	// há motivo para atravessar a fronteira da engine com conjunto vazio
	if len(sales) == 0 {
		logrus.WithFields(logrus.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Info("reporting: nenhuma venda no período")

		report.Analytics = aggregating.EmptyResult()
		return report, nil
	}

	result, err := s.backend.Aggregate(ctx, sales)
	if err != nil {
		s.logBackendFailure(err, len(sales))

		// Falha de engine nunca vira erro para o usuário: recalculamos o
		// subconjunto reduzido em processo. Saída parcial da engine jamais
		// é mesclada com a saída da contingência.
		report.Degraded = true
		report.EngineError = err.Error()
		report.Analytics = aggregating.AggregateReduced(sales)

		return report, nil
	}

	report.Analytics = result
	return report, nil
}

func (s *Service) SalesReportByRange(ctx context.Context, filters *domain.ReportFilters) (*domain.SalesReport, error) {
	analyticsReport, err := s.AnalyticsByRange(ctx, filters)
	if err != nil {
		return nil, err
	}

	stats := analyticsReport.Analytics.Statistics

	return &domain.SalesReport{
		DateFrom:     analyticsReport.Filters.StartDate.Format(time.DateOnly),
		DateTo:       analyticsReport.Filters.EndDate.Format(time.DateOnly),
		TotalRevenue: stats.TotalRevenue,
		TotalCount:   stats.TotalSales,
		AverageCheck: stats.Mean,
		TopProducts:  analyticsReport.Analytics.TopProductsByRevenue,
		Degraded:     analyticsReport.Degraded,
	}, nil
}

// normalizeRange aplica o intervalo padrão ("últimos N dias até hoje")
// quando o filtro está ausente, incompleto ou invertido. Intervalo inválido
// é recuperado localmente, nunca propagado como erro.
func (s *Service) normalizeRange(filters *domain.ReportFilters) (time.Time, time.Time) {
	days := s.cfg.Analytics.DefaultRangeDays
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	defaultStart := now.AddDate(0, 0, -days)

	if filters == nil || !validDate(filters.StartDate) || !validDate(filters.EndDate) {
		return defaultStart, now
	}

	if filters.StartDate.After(*filters.EndDate) {
		logrus.WithFields(logrus.Fields{
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Warn("reporting: intervalo invertido, aplicando intervalo padrão")

		return defaultStart, now
	}

	return *filters.StartDate, *filters.EndDate
}

func validDate(date *time.Time) bool {
	return date != nil && !date.IsZero()
}

func (s *Service) logBackendFailure(err error, salesCount int) {
	fields := logrus.Fields{
		"sales": salesCount,
	}

	if backendErr, ok := analytics.AsBackendError(err); ok {
		fields["failure_kind"] = string(backendErr.Kind)
		fields["reason"] = backendErr.Reason
	}

	logrus.WithError(err).WithFields(fields).
		Warn("reporting: backend de analytics falhou, usando agregador reduzido")
}
