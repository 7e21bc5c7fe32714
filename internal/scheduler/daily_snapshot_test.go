package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/store-analytics-api/internal/config"
	"github.com/vfg2006/store-analytics-api/internal/domain"
	reportingmocks "github.com/vfg2006/store-analytics-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func TestDailySnapshotService_RunSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingmocks.NewMockReporter(ctrl)

	service := &DailySnapshotService{
		reporter: mockReporter,
		config: DailySnapshotConfig{
			CronSchedule: "0 1 * * *",
			LookbackDays: 7,
			Enabled:      true,
		},
	}

	expected := &domain.AnalyticsReport{ReportID: "abc123"}

	mockReporter.EXPECT().
		AnalyticsByRange(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filters *domain.ReportFilters) (*domain.AnalyticsReport, error) {
			// Janela dos últimos LookbackDays dias até agora
			require.NotNil(t, filters.StartDate)
			require.NotNil(t, filters.EndDate)
			assert.WithinDuration(t, time.Now(), *filters.EndDate, time.Minute)
			assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), *filters.StartDate, time.Minute)
			return expected, nil
		})

	require.Nil(t, service.Latest())

	service.runSnapshot(context.Background())

	assert.Equal(t, expected, service.Latest())
}

func TestDailySnapshotService_ErroNaoSobrescreveSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingmocks.NewMockReporter(ctrl)

	previous := &domain.AnalyticsReport{ReportID: "anterior"}
	service := &DailySnapshotService{
		reporter:     mockReporter,
		lastSnapshot: previous,
		config:       DailySnapshotConfig{LookbackDays: 1, Enabled: true},
	}

	mockReporter.EXPECT().
		AnalyticsByRange(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	service.runSnapshot(context.Background())

	// O último snapshot válido permanece disponível
	assert.Equal(t, previous, service.Latest())
}

func TestDailySnapshotService_StartDesabilitado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingmocks.NewMockReporter(ctrl)

	service := NewDailySnapshotService(mockReporter, &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule: "0 1 * * *",
			LookbackDays: 1,
			Enabled:      false,
		},
	})

	// Desabilitado: nenhum job agendado, nenhuma chamada ao reporter
	assert.NoError(t, service.Start(context.Background()))
}
