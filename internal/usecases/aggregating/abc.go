package aggregating

import (
	"sort"

	"github.com/vfg2006/store-analytics-api/internal/domain"
)

// Limiares da classificação ABC em percentual acumulado de receita.
// A tolerância absorve o erro de ponto flutuante na soma acumulada, para
// que um produto exatamente sobre o limiar fique na classe de baixo.
const (
	abcThresholdA = 80.0
	abcThresholdB = 95.0
	abcTolerance  = 1e-9
)

// ABCClassify ordena os produtos por receita decrescente e atribui classes
// pela participação acumulada: até 80% classe A, até 95% classe B e o
// restante classe C. O produto que faz a soma acumulada cruzar um limiar
// recebe a classe para a qual ele cruza, não a que ele deixa. O primeiro do
// ranking é sempre classe A, mesmo quando sozinho ultrapassa os limiares.
func ABCClassify(products []productTotal) []domain.ABCItem {
	totalRevenue := 0.0
	for _, pt := range products {
		totalRevenue += pt.revenue
	}
	if totalRevenue <= 0 {
		return []domain.ABCItem{}
	}

	ranked := make([]productTotal, len(products))
	copy(ranked, products)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].id < ranked[j].id
	})

	items := make([]domain.ABCItem, 0, len(ranked))
	cumulative := 0.0
	for i, pt := range ranked {
		cumulative += pt.revenue / totalRevenue * 100

		class := domain.ABCClassC
		switch {
		case i == 0 || cumulative <= abcThresholdA+abcTolerance:
			class = domain.ABCClassA
		case cumulative <= abcThresholdB+abcTolerance:
			class = domain.ABCClassB
		}

		items = append(items, domain.ABCItem{
			ProductName: pt.name,
			Class:       class,
		})
	}

	return items
}
