package aggregating

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/store-analytics-api/internal/domain"
	"github.com/vfg2006/store-analytics-api/pkg/utils"
)

// ErrNoSales indica que a engine recebeu um conjunto vazio de vendas.
// Quem chama deve tratar um intervalo sem vendas como resultado vazio
// válido ANTES de invocar a engine; aqui o conjunto vazio é falha.
var ErrNoSales = errors.New("nenhuma venda no conjunto de entrada")

// Quantidade máxima de produtos retornados nos rankings.
const topProductsLimit = 10

// productTotal acumula receita e quantidade de um produto em todas as vendas.
type productTotal struct {
	id       int64
	name     string
	revenue  float64
	quantity int
}

// categoryTotal acumula a receita de uma categoria.
type categoryTotal struct {
	id      int64
	name    string
	revenue float64
}

// Aggregate calcula o pacote completo de analytics sobre o conjunto de
// vendas. É uma função pura: a mesma entrada produz sempre a mesma saída,
// sem dependência de relógio ou de aleatoriedade.
func Aggregate(sales []*domain.SaleRecord) (*domain.AnalyticsResult, error) {
	if len(sales) == 0 {
		return nil, ErrNoSales
	}

	products := aggregateProducts(sales)

	result := &domain.AnalyticsResult{
		DailyRevenue:          dailyRevenue(sales),
		WeeklyRevenue:         periodRevenue(sales, weekLabel),
		MonthlyRevenue:        periodRevenue(sales, monthLabel),
		TopProductsByRevenue:  topProducts(products, byRevenue),
		TopProductsByQuantity: topProducts(products, byQuantity),
		CategoryShares:        categoryShares(sales),
		Statistics:            Statistics(sales),
		ABCAnalysis:           ABCClassify(products),
	}

	return result, nil
}

// AggregateReduced calcula o subconjunto reduzido usado pelo caminho de
// contingência: série diária, top-10 por receita e estatísticas básicas.
// Usa exatamente as mesmas fórmulas do pacote completo, então os campos
// sobrepostos dos dois caminhos coincidem para a mesma entrada.
func AggregateReduced(sales []*domain.SaleRecord) *domain.AnalyticsResult {
	if len(sales) == 0 {
		return EmptyResult()
	}

	result := EmptyResult()
	result.DailyRevenue = dailyRevenue(sales)
	result.TopProductsByRevenue = topProducts(aggregateProducts(sales), byRevenue)
	result.Statistics = Statistics(sales)

	return result
}

// EmptyResult retorna um resultado vazio válido, com listas não nulas para
// que a serialização produza arrays vazios em vez de null.
func EmptyResult() *domain.AnalyticsResult {
	return &domain.AnalyticsResult{
		DailyRevenue:          []domain.RevenueBucket{},
		WeeklyRevenue:         []domain.PeriodBucket{},
		MonthlyRevenue:        []domain.PeriodBucket{},
		TopProductsByRevenue:  []domain.ProductRank{},
		TopProductsByQuantity: []domain.ProductRank{},
		CategoryShares:        []domain.CategoryShare{},
		ABCAnalysis:           []domain.ABCItem{},
	}
}

// dailyRevenue agrupa as vendas por dia-calendário (YYYY-MM-DD) somando o
// total por bucket. Buckets sem vendas são omitidos.
func dailyRevenue(sales []*domain.SaleRecord) []domain.RevenueBucket {
	totals := make(map[string]float64)
	for _, sale := range sales {
		totals[sale.CreatedAt.Format(time.DateOnly)] += sale.TotalAmount
	}

	buckets := make([]domain.RevenueBucket, 0, len(totals))
	for date, revenue := range totals {
		buckets = append(buckets, domain.RevenueBucket{
			Date:    date,
			Revenue: utils.RoundWithTwoDecimalPlace(revenue),
		})
	}

	// Os rótulos YYYY-MM-DD ordenam cronologicamente por comparação lexical
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})

	return buckets
}

// weekLabel rotula a semana ISO da venda no formato YYYY-Www.
func weekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// monthLabel rotula o mês-calendário da venda no formato YYYY-MM.
func monthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// periodRevenue agrupa as vendas pelo rótulo de período informado. Os
// rótulos gerados ordenam cronologicamente por comparação lexical.
func periodRevenue(sales []*domain.SaleRecord, label func(time.Time) string) []domain.PeriodBucket {
	totals := make(map[string]float64)
	for _, sale := range sales {
		totals[label(sale.CreatedAt)] += sale.TotalAmount
	}

	buckets := make([]domain.PeriodBucket, 0, len(totals))
	for period, revenue := range totals {
		buckets = append(buckets, domain.PeriodBucket{
			Period:  period,
			Revenue: utils.RoundWithTwoDecimalPlace(revenue),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period < buckets[j].Period
	})

	return buckets
}

// aggregateProducts agrega os itens de venda por produto, somando quantidade
// e subtotal. O resultado sai ordenado por ID de produto para que as
// ordenações seguintes tenham base determinística.
func aggregateProducts(sales []*domain.SaleRecord) []productTotal {
	totals := make(map[int64]*productTotal)
	for _, sale := range sales {
		for _, item := range sale.Items {
			pt, ok := totals[item.ProductID]
			if !ok {
				pt = &productTotal{id: item.ProductID, name: item.ProductName}
				totals[item.ProductID] = pt
			}
			pt.revenue += item.Subtotal
			pt.quantity += item.Quantity
		}
	}

	products := make([]productTotal, 0, len(totals))
	for _, pt := range totals {
		products = append(products, *pt)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].id < products[j].id
	})

	return products
}

type rankMetric int

const (
	byRevenue rankMetric = iota
	byQuantity
)

// topProducts ordena a agregação por produto pela métrica pedida, com
// desempate por ID de produto ascendente, e trunca no limite do ranking.
func topProducts(products []productTotal, metric rankMetric) []domain.ProductRank {
	ranked := make([]productTotal, len(products))
	copy(ranked, products)

	sort.Slice(ranked, func(i, j int) bool {
		switch metric {
		case byQuantity:
			if ranked[i].quantity != ranked[j].quantity {
				return ranked[i].quantity > ranked[j].quantity
			}
		default:
			if ranked[i].revenue != ranked[j].revenue {
				return ranked[i].revenue > ranked[j].revenue
			}
		}
		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}

	top := make([]domain.ProductRank, 0, len(ranked))
	for _, pt := range ranked {
		top = append(top, domain.ProductRank{
			ProductName: pt.name,
			Revenue:     utils.RoundWithTwoDecimalPlace(pt.revenue),
			Quantity:    pt.quantity,
		})
	}

	return top
}

// categoryShares calcula o percentual da receita total do período atribuível
// a cada categoria. Com receita total zero retorna lista vazia em vez de
// dividir por zero.
func categoryShares(sales []*domain.SaleRecord) []domain.CategoryShare {
	totalRevenue := 0.0
	for _, sale := range sales {
		totalRevenue += sale.TotalAmount
	}
	if totalRevenue <= 0 {
		return []domain.CategoryShare{}
	}

	totals := make(map[int64]*categoryTotal)
	for _, sale := range sales {
		for _, item := range sale.Items {
			ct, ok := totals[item.CategoryID]
			if !ok {
				ct = &categoryTotal{id: item.CategoryID, name: item.CategoryName}
				totals[item.CategoryID] = ct
			}
			ct.revenue += item.Subtotal
		}
	}

	categories := make([]categoryTotal, 0, len(totals))
	for _, ct := range totals {
		categories = append(categories, *ct)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].revenue != categories[j].revenue {
			return categories[i].revenue > categories[j].revenue
		}
		return categories[i].id < categories[j].id
	})

	shares := make([]domain.CategoryShare, 0, len(categories))
	for _, ct := range categories {
		shares = append(shares, domain.CategoryShare{
			Category: ct.name,
			Share:    utils.RoundWithTwoDecimalPlace(ct.revenue / totalRevenue * 100),
		})
	}

	return shares
}
