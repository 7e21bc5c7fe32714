package analytics

import (
	"context"

	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/internal/usecases/aggregating"
)

// NativeBackend executa a agregação em processo, sem fronteira de
// transporte. É o backend padrão.
type NativeBackend struct{}

func NewNativeBackend() Backend {
	return &NativeBackend{}
}

func (b *NativeBackend) Aggregate(_ context.Context, sales []*domain.SaleRecord) (*domain.AnalyticsResult, error) {
	result, err := aggregating.Aggregate(sales)
	if err != nil {
		return nil, &BackendError{
			Kind:   FailureEngineFailed,
			Reason: err.Error(),
			Err:    err,
		}
	}

	return result, nil
}
