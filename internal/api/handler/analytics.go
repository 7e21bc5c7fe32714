package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/store-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/store-analytics-api/pkg/log"
	"github.com/vfg2006/store-analytics-api/pkg/utils"
)

// GetAnalyticsData retorna o pacote completo de analytics para o intervalo
// informado em date_from/date_to. Datas ausentes ou malformadas caem no
// intervalo padrão do serviço — nunca viram erro para o cliente.
func GetAnalyticsData(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters := parseRangeFilters(r, logger)

		report, err := service.AnalyticsByRange(r.Context(), filters)
		if err != nil {
			logger.WithError(err).Error("analytics: erro ao calcular analytics do período")
			apiErrors.WriteError(w, apiErrors.ErrAnalyticsFailed, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"report_id":   report.ReportID,
			"degraded":    report.Degraded,
			"total_sales": report.Analytics.Statistics.TotalSales,
		}).Info("analytics: pacote de analytics calculado")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("analytics: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetSalesReport retorna o resumo de vendas consumido pela página de
// relatórios.
func GetSalesReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters := parseRangeFilters(r, logger)

		report, err := service.SalesReportByRange(r.Context(), filters)
		if err != nil {
			logger.WithError(err).Error("reports: erro ao montar relatório de vendas")
			apiErrors.WriteError(w, apiErrors.ErrAnalyticsFailed, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"date_from":   report.DateFrom,
			"date_to":     report.DateTo,
			"total_count": report.TotalCount,
			"degraded":    report.Degraded,
		}).Info("reports: relatório de vendas gerado com sucesso")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// parseRangeFilters extrai date_from/date_to da query string. Data inválida
// é registrada e descartada; o serviço substitui pelo intervalo padrão.
func parseRangeFilters(r *http.Request, logger log.Logger) *domain.ReportFilters {
	filters := &domain.ReportFilters{}

	startDate, err := utils.ParseDate(r.URL.Query().Get("date_from"))
	if err != nil {
		logger.WithFields(log.Fields{
			"date_from": r.URL.Query().Get("date_from"),
			"error":     err.Error(),
		}).Warn("analytics: parâmetro date_from inválido, usando intervalo padrão")
	} else {
		filters.StartDate = startDate
	}

	endDate, err := utils.ParseDate(r.URL.Query().Get("date_to"))
	if err != nil {
		logger.WithFields(log.Fields{
			"date_to": r.URL.Query().Get("date_to"),
			"error":   err.Error(),
		}).Warn("analytics: parâmetro date_to inválido, usando intervalo padrão")
	} else {
		filters.EndDate = endDate
	}

	return filters
}
