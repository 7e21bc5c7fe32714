package reporting

import (
	"context"

	"github.com/vfg2006/store-analytics-api/internal/domain"
)

// Reporter é a interface consumida pela camada de apresentação (página de
// relatórios, exportação e API JSON de analytics).
type Reporter interface {
	// AnalyticsByRange calcula o pacote de analytics para o intervalo de
	// datas. Nunca falha por causa da engine: qualquer falha de backend
	// degrada para o agregador reduzido em processo.
	AnalyticsByRange(ctx context.Context, filters *domain.ReportFilters) (*domain.AnalyticsReport, error)

	// SalesReportByRange monta o resumo de vendas da página de relatórios a
	// partir do mesmo pacote de analytics.
	SalesReportByRange(ctx context.Context, filters *domain.ReportFilters) (*domain.SalesReport, error)
}
