package aggregating

import (
	"math"
	"sort"

	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/pkg/utils"
)

// Statistics calcula as estatísticas descritivas sobre o multiconjunto de
// totais por venda, excluindo valores não positivos. O desvio padrão é o
// populacional (divisão por N). Com conjunto qualificado vazio, tudo zera.
func Statistics(sales []*domain.SaleRecord) domain.SaleStatistics {
	amounts := make([]float64, 0, len(sales))
	for _, sale := range sales {
		if sale.TotalAmount > 0 {
			amounts = append(amounts, sale.TotalAmount)
		}
	}

	if len(amounts) == 0 {
		return domain.SaleStatistics{}
	}

	sort.Float64s(amounts)

	n := len(amounts)
	total := 0.0
	for _, amount := range amounts {
		total += amount
	}
	mean := total / float64(n)

	variance := 0.0
	for _, amount := range amounts {
		deviation := amount - mean
		variance += deviation * deviation
	}
	variance /= float64(n)

	return domain.SaleStatistics{
		TotalRevenue: utils.RoundWithTwoDecimalPlace(total),
		Mean:         utils.RoundWithTwoDecimalPlace(mean),
		Median:       utils.RoundWithTwoDecimalPlace(median(amounts)),
		StdDev:       utils.RoundWithTwoDecimalPlace(math.Sqrt(variance)),
		Min:          amounts[0],
		Max:          amounts[n-1],
		TotalSales:   n,
	}
}

// median assume a sequência já ordenada; com contagem par retorna a média
// dos dois valores centrais.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
