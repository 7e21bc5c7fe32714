package analytics

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SubprocessBackend é a fronteira de transporte: serializa o conjunto de
// vendas, invoca a engine como um subprocesso isolado com limite de tempo e
// interpreta o documento de saída. Não agrega nada por conta própria — é
// apenas uma camada de marshaling e isolamento, por isso falhas da engine
// são distinguíveis de falhas de marshaling.
type SubprocessBackend struct {
	executablePath string
	timeout        time.Duration
}

// NewSubprocessBackend cria o backend apontando para o executável da engine.
// A engine é lançada nova a cada chamada: não há processo persistente nem
// fila compartilhada entre requisições concorrentes.
func NewSubprocessBackend(executablePath string, timeout time.Duration) Backend {
	return &SubprocessBackend{
		executablePath: executablePath,
		timeout:        timeout,
	}
}

func (b *SubprocessBackend) Aggregate(ctx context.Context, sales []*domain.SaleRecord) (*domain.AnalyticsResult, error) {
	if _, err := os.Stat(b.executablePath); err != nil {
		return nil, &BackendError{
			Kind:   FailureEngineUnavailable,
			Reason: "executável da engine não encontrado: " + b.executablePath,
			Err:    err,
		}
	}

	payload, err := json.Marshal(EncodeInput(sales))
	if err != nil {
		// Falha de marshaling do lado de cá da fronteira, não da engine
		return nil, errors.Wrap(err, "erro ao serializar vendas para a engine")
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Trace("analytics-engine: payload de entrada\n", utils.PrettyJson(payload))
	}

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, b.executablePath)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	runErr := cmd.Run()

	logrus.WithFields(logrus.Fields{
		"engine":      b.executablePath,
		"sales":       len(sales),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("analytics-engine: subprocesso finalizado")

	if runErr != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, &BackendError{
				Kind:   FailureEngineTimeout,
				Reason: "engine excedeu o limite de " + b.timeout.String(),
				Err:    runErr,
			}
		}

		// A engine pode terminar com exit diferente de zero e ainda assim
		// devolver um documento de falha estruturado no stdout
		if output, ok := decodeOutput(stdout.Bytes()); ok && output.Error != "" {
			return nil, &BackendError{
				Kind:   FailureEngineFailed,
				Reason: output.Error,
				Err:    runErr,
			}
		}

		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = runErr.Error()
		}

		return nil, &BackendError{
			Kind:   FailureEngineCrashed,
			Reason: reason,
			Err:    runErr,
		}
	}

	output, ok := decodeOutput(stdout.Bytes())
	if !ok {
		return nil, &BackendError{
			Kind:   FailureMalformedOutput,
			Reason: "saída da engine falhou o parsing estruturado",
		}
	}

	if output.Error != "" {
		return nil, &BackendError{
			Kind:   FailureEngineFailed,
			Reason: output.Error,
		}
	}

	result := output.AnalyticsResult
	return &result, nil
}

func decodeOutput(raw []byte) (*EngineOutput, bool) {
	output := &EngineOutput{}
	if err := json.Unmarshal(raw, output); err != nil {
		return nil, false
	}
	return output, true
}
