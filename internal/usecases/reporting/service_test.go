package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/store-analytics-api/infrastructure/analytics"
	analyticsmocks "github.com/vfg2006/store-analytics-api/infrastructure/analytics/mocks"
	repomocks "github.com/vfg2006/store-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/store-analytics-api/internal/config"
	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/internal/usecases/aggregating"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.Analytics{
			Backend:          "native",
			DefaultRangeDays: 30,
		},
	}
}

func rangeFilters(from, to string) *domain.ReportFilters {
	start, _ := time.Parse(time.DateOnly, from)
	end, _ := time.Parse(time.DateOnly, to)
	return &domain.ReportFilters{StartDate: &start, EndDate: &end}
}

func testSales() []*domain.SaleRecord {
	return []*domain.SaleRecord{
		{
			ID:          1,
			CreatedAt:   time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC),
			TotalAmount: 100.0,
			Items: []*domain.LineItem{
				{
					ProductID:    1,
					ProductName:  "Refrigerante 2L",
					CategoryID:   1,
					CategoryName: "Bebidas",
					Quantity:     10,
					Price:        10.0,
					Subtotal:     100.0,
				},
			},
		},
		{
			ID:          2,
			CreatedAt:   time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC),
			TotalAmount: 50.0,
			Items: []*domain.LineItem{
				{
					ProductID:    2,
					ProductName:  "Leite integral 1L",
					CategoryID:   2,
					CategoryName: "Laticínios",
					Quantity:     5,
					Price:        10.0,
					Subtotal:     50.0,
				},
			},
		},
	}
}

func TestAnalyticsByRange_Sucesso(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSalesRepository(ctrl)
	mockBackend := analyticsmocks.NewMockBackend(ctrl)
	service := NewService(testConfig(), mockRepo, mockBackend)

	sales := testSales()
	expected, err := aggregating.Aggregate(sales)
	require.NoError(t, err)

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(sales, nil)
	mockBackend.EXPECT().
		Aggregate(gomock.Any(), sales).
		Return(expected, nil)

	report, err := service.AnalyticsByRange(context.Background(), rangeFilters("2024-01-01", "2024-01-31"))

	require.NoError(t, err)
	assert.NotEmpty(t, report.ReportID)
	assert.False(t, report.Degraded)
	assert.Empty(t, report.EngineError)
	assert.Equal(t, expected, report.Analytics)
	assert.Equal(t, "2024-01-01", report.Filters.StartDate.Format(time.DateOnly))
	assert.Equal(t, "2024-01-31", report.Filters.EndDate.Format(time.DateOnly))
}

func TestAnalyticsByRange_FalhaDoBackendDegradaParaReduzido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSalesRepository(ctrl)
	mockBackend := analyticsmocks.NewMockBackend(ctrl)
	service := NewService(testConfig(), mockRepo, mockBackend)

	sales := testSales()

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(sales, nil)
	mockBackend.EXPECT().
		Aggregate(gomock.Any(), sales).
		Return(nil, &analytics.BackendError{
			Kind:   analytics.FailureEngineTimeout,
			Reason: "engine excedeu o limite de 30s",
		})

	report, err := service.AnalyticsByRange(context.Background(), rangeFilters("2024-01-01", "2024-01-31"))

	// Falha de engine nunca vira erro para o usuário
	require.NoError(t, err)
	assert.True(t, report.Degraded)
	assert.NotEmpty(t, report.EngineError)

	// O resultado é exatamente o do agregador reduzido, sem mescla parcial
	assert.Equal(t, aggregating.AggregateReduced(sales), report.Analytics)
	assert.Empty(t, report.Analytics.CategoryShares)
	assert.Empty(t, report.Analytics.ABCAnalysis)
}

func TestAnalyticsByRange_PeriodoSemVendas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSalesRepository(ctrl)
	mockBackend := analyticsmocks.NewMockBackend(ctrl)
	service := NewService(testConfig(), mockRepo, mockBackend)

	// O backend nunca é invocado: nenhum EXPECT registrado para Aggregate
	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.SaleRecord{}, nil)

	report, err := service.AnalyticsByRange(context.Background(), rangeFilters("2024-01-01", "2024-01-31"))

	require.NoError(t, err)
	assert.False(t, report.Degraded)
	assert.Equal(t, aggregating.EmptyResult(), report.Analytics)
	assert.Equal(t, 0, report.Analytics.Statistics.TotalSales)
}

func TestAnalyticsByRange_ErroDeExtracao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSalesRepository(ctrl)
	mockBackend := analyticsmocks.NewMockBackend(ctrl)
	service := NewService(testConfig(), mockRepo, mockBackend)

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	report, err := service.AnalyticsByRange(context.Background(), rangeFilters("2024-01-01", "2024-01-31"))

	assert.Nil(t, report)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNormalizeRange(t *testing.T) {
	cfg := testConfig()
	cfg.Analytics.DefaultRangeDays = 7
	service := &Service{cfg: cfg}

	tests := []struct {
		name        string
		filters     *domain.ReportFilters
		wantDefault bool
	}{
		{name: "Filtro ausente aplica o intervalo padrão", filters: nil, wantDefault: true},
		{
			name:        "Filtro incompleto aplica o intervalo padrão",
			filters:     &domain.ReportFilters{StartDate: rangeFilters("2024-01-01", "2024-01-31").StartDate},
			wantDefault: true,
		},
		{
			name:        "Intervalo invertido aplica o intervalo padrão",
			filters:     rangeFilters("2024-01-31", "2024-01-01"),
			wantDefault: true,
		},
		{
			name:        "Intervalo válido passa intacto",
			filters:     rangeFilters("2024-01-01", "2024-01-31"),
			wantDefault: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := service.normalizeRange(tt.filters)

			if tt.wantDefault {
				// Últimos 7 dias até agora
				assert.WithinDuration(t, time.Now(), end, time.Minute)
				assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), start, time.Minute)
				return
			}

			assert.Equal(t, *tt.filters.StartDate, start)
			assert.Equal(t, *tt.filters.EndDate, end)
		})
	}
}

func TestSalesReportByRange_DerivaDoPacoteDeAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSalesRepository(ctrl)
	mockBackend := analyticsmocks.NewMockBackend(ctrl)
	service := NewService(testConfig(), mockRepo, mockBackend)

	sales := testSales()
	result, err := aggregating.Aggregate(sales)
	require.NoError(t, err)

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(sales, nil)
	mockBackend.EXPECT().
		Aggregate(gomock.Any(), sales).
		Return(result, nil)

	report, err := service.SalesReportByRange(context.Background(), rangeFilters("2024-01-01", "2024-01-31"))

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", report.DateFrom)
	assert.Equal(t, "2024-01-31", report.DateTo)
	assert.Equal(t, 150.0, report.TotalRevenue)
	assert.Equal(t, 2, report.TotalCount)
	assert.Equal(t, 75.0, report.AverageCheck)
	assert.Equal(t, result.TopProductsByRevenue, report.TopProducts)
	assert.False(t, report.Degraded)
}
