package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/store-analytics-api/internal/domain"
)

// Backend é a capacidade plugável de agregação de analytics. A implementação
// nativa roda em processo; a de subprocesso isola a engine atrás da fronteira
// de transporte. As duas são intercambiáveis por configuração.
type Backend interface {
	Aggregate(ctx context.Context, sales []*domain.SaleRecord) (*domain.AnalyticsResult, error)
}

// FailureKind classifica as falhas da engine para diagnóstico. Falhas de
// engine nunca chegam ao usuário final: o chamador aciona o agregador
// reduzido em processo e entrega um relatório degradado.
type FailureKind string

const (
	// FailureEngineUnavailable indica executável da engine ausente. É um modo
	// de falha normal e esperado, não uma exceção.
	FailureEngineUnavailable FailureKind = "engine_unavailable"

	// FailureEngineTimeout indica que a engine estourou o limite de tempo.
	FailureEngineTimeout FailureKind = "engine_timeout"

	// FailureEngineCrashed indica término anormal ou exit diferente de zero,
	// com o texto de diagnóstico capturado do stream de erro.
	FailureEngineCrashed FailureKind = "engine_crashed"

	// FailureMalformedOutput indica saída que falhou o parsing estruturado.
	FailureMalformedOutput FailureKind = "malformed_output"

	// FailureEngineFailed indica que a engine devolveu um documento de falha
	// estruturado (campo "error" presente).
	FailureEngineFailed FailureKind = "engine_failed"
)

// BackendError carrega a taxonomia de falha junto com o motivo legível.
type BackendError struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// AsBackendError extrai um BackendError da cadeia de erros, se houver.
func AsBackendError(err error) (*BackendError, bool) {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr, true
	}
	return nil, false
}
