package main

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/store-analytics-api/infrastructure/analytics"
	"github.com/vfg2006/store-analytics-api/internal/usecases/aggregating"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Engine de analytics isolada: lê o documento de vendas no stdin, calcula o
// pacote completo de agregações e escreve o documento de resultado no
// stdout. Qualquer falha vira um documento contendo apenas o campo "error"
// e exit 1 — a presença desse campo é o único sinal de falha do protocolo.
func main() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fail("erro ao ler entrada: " + err.Error())
	}

	if len(raw) == 0 {
		fail("nenhum dado de entrada")
	}

	var input analytics.EngineInput
	if err := json.Unmarshal(raw, &input); err != nil {
		fail("entrada malformada: " + err.Error())
	}

	sales, err := analytics.DecodeInput(input)
	if err != nil {
		fail(err.Error())
	}

	result, err := aggregating.Aggregate(sales)
	if err != nil {
		fail(err.Error())
	}

	output := analytics.EngineOutput{AnalyticsResult: *result}
	encoded, err := json.Marshal(output)
	if err != nil {
		fail("erro ao serializar resultado: " + err.Error())
	}

	if _, err := os.Stdout.Write(encoded); err != nil {
		os.Exit(1)
	}
}

// fail emite o documento de falha contendo somente o campo "error".
func fail(reason string) {
	encoded, err := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: reason})
	if err != nil {
		os.Exit(1)
	}

	_, _ = os.Stdout.Write(encoded)
	os.Exit(1)
}
