package aggregating

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/store-analytics-api/internal/domain"
)

func makeSale(id int64, date string, total float64, items ...*domain.LineItem) *domain.SaleRecord {
	createdAt, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return &domain.SaleRecord{
		ID:          id,
		CreatedAt:   createdAt,
		TotalAmount: total,
		Items:       items,
	}
}

func makeItem(productID int64, product string, categoryID int64, category string, quantity int, price float64) *domain.LineItem {
	return &domain.LineItem{
		ProductID:    productID,
		ProductName:  product,
		CategoryID:   categoryID,
		CategoryName: category,
		Quantity:     quantity,
		Price:        price,
		Subtotal:     float64(quantity) * price,
	}
}

func TestAggregate_ConjuntoVazioRetornaErro(t *testing.T) {
	result, err := Aggregate(nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoSales)
}

func TestAggregate_SerieDiaria(t *testing.T) {
	sales := []*domain.SaleRecord{
		makeSale(3, "2024-01-02", 100.0),
		makeSale(1, "2024-01-01", 30.0),
		makeSale(2, "2024-01-02", 50.5),
	}

	result, err := Aggregate(sales)
	require.NoError(t, err)

	// Vendas do mesmo dia somam no mesmo bucket; dias sem venda são omitidos
	assert.Equal(t, []domain.RevenueBucket{
		{Date: "2024-01-01", Revenue: 30.0},
		{Date: "2024-01-02", Revenue: 150.5},
	}, result.DailyRevenue)
}

func TestAggregate_SeriesSemanalEMensal(t *testing.T) {
	// 2023-12-31 é domingo da semana ISO 2023-W52; 2024-01-01 é segunda da 2024-W01
	sales := []*domain.SaleRecord{
		makeSale(1, "2023-12-31", 80.0),
		makeSale(2, "2024-01-01", 100.0),
		makeSale(3, "2024-01-03", 20.0),
	}

	result, err := Aggregate(sales)
	require.NoError(t, err)

	assert.Equal(t, []domain.PeriodBucket{
		{Period: "2023-W52", Revenue: 80.0},
		{Period: "2024-W01", Revenue: 120.0},
	}, result.WeeklyRevenue)

	assert.Equal(t, []domain.PeriodBucket{
		{Period: "2023-12", Revenue: 80.0},
		{Period: "2024-01", Revenue: 120.0},
	}, result.MonthlyRevenue)
}

func TestAggregate_RankingsDeProdutos(t *testing.T) {
	sales := []*domain.SaleRecord{
		makeSale(1, "2024-01-01", 100.0,
			makeItem(1, "Refrigerante 2L", 1, "Bebidas", 2, 10.0), // receita 20, qtd 2
			makeItem(2, "Leite integral 1L", 2, "Laticínios", 5, 8.0), // receita 40, qtd 5
		),
		makeSale(2, "2024-01-02", 60.0,
			makeItem(3, "Detergente 500ml", 3, "Limpeza", 4, 10.0), // receita 40, qtd 4
			makeItem(1, "Refrigerante 2L", 1, "Bebidas", 2, 10.0),  // acumula: receita 40, qtd 4
		),
	}

	result, err := Aggregate(sales)
	require.NoError(t, err)

	// Empate de receita em 40: desempate por ID de produto ascendente
	assert.Equal(t, []domain.ProductRank{
		{ProductName: "Refrigerante 2L", Revenue: 40.0, Quantity: 4},
		{ProductName: "Leite integral 1L", Revenue: 40.0, Quantity: 5},
		{ProductName: "Detergente 500ml", Revenue: 40.0, Quantity: 4},
	}, result.TopProductsByRevenue)

	// Por quantidade: 5 > 4, empate em 4 desempata por ID
	assert.Equal(t, []domain.ProductRank{
		{ProductName: "Leite integral 1L", Revenue: 40.0, Quantity: 5},
		{ProductName: "Refrigerante 2L", Revenue: 40.0, Quantity: 4},
		{ProductName: "Detergente 500ml", Revenue: 40.0, Quantity: 4},
	}, result.TopProductsByQuantity)
}

func TestAggregate_RankingTruncaEmDezProdutos(t *testing.T) {
	items := make([]*domain.LineItem, 0, 12)
	for i := int64(1); i <= 12; i++ {
		items = append(items, makeItem(i, "Produto", i, "Categoria", 1, float64(i)))
	}
	sales := []*domain.SaleRecord{makeSale(1, "2024-01-01", 78.0, items...)}

	result, err := Aggregate(sales)
	require.NoError(t, err)

	require.Len(t, result.TopProductsByRevenue, 10)
	require.Len(t, result.TopProductsByQuantity, 10)

	// Receita decrescente: os produtos 12 e 11 lideram, 1 e 2 ficam de fora
	assert.Equal(t, 12.0, result.TopProductsByRevenue[0].Revenue)
	assert.Equal(t, 3.0, result.TopProductsByRevenue[9].Revenue)
}

func TestAggregate_ParticipacaoPorCategoria(t *testing.T) {
	sales := []*domain.SaleRecord{
		makeSale(1, "2024-01-01", 200.0,
			makeItem(1, "Refrigerante 2L", 1, "Bebidas", 15, 10.0), // 150
			makeItem(2, "Detergente 500ml", 2, "Limpeza", 5, 10.0), // 50
		),
	}

	result, err := Aggregate(sales)
	require.NoError(t, err)

	assert.Equal(t, []domain.CategoryShare{
		{Category: "Bebidas", Share: 75.0},
		{Category: "Limpeza", Share: 25.0},
	}, result.CategoryShares)

	// As participações somam 100 dentro da tolerância de arredondamento
	sum := 0.0
	for _, share := range result.CategoryShares {
		sum += share.Share
	}
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestAggregate_ReceitaZeradaSemParticipacoes(t *testing.T) {
	sales := []*domain.SaleRecord{
		makeSale(1, "2024-01-01", 0.0,
			makeItem(1, "Brinde", 1, "Bebidas", 1, 0.0),
		),
	}

	result, err := Aggregate(sales)
	require.NoError(t, err)

	// Sem receita não há denominador: lista vazia, nunca divisão por zero
	assert.Empty(t, result.CategoryShares)
	assert.Empty(t, result.ABCAnalysis)
}

func TestAggregate_Determinismo(t *testing.T) {
	sales := []*domain.SaleRecord{
		makeSale(1, "2024-01-01", 130.0,
			makeItem(2, "Leite integral 1L", 2, "Laticínios", 5, 8.0),
			makeItem(1, "Refrigerante 2L", 1, "Bebidas", 9, 10.0),
		),
		makeSale(2, "2024-01-05", 64.0,
			makeItem(3, "Detergente 500ml", 3, "Limpeza", 20, 3.2),
		),
	}

	first, err := Aggregate(sales)
	require.NoError(t, err)
	second, err := Aggregate(sales)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	// Mesma entrada, saída serializada byte a byte idêntica
	assert.Equal(t, firstJSON, secondJSON)
}

func TestAggregateReduced_CoincideComPacoteCompleto(t *testing.T) {
	sales := []*domain.SaleRecord{
		makeSale(1, "2024-01-01", 130.0,
			makeItem(2, "Leite integral 1L", 2, "Laticínios", 5, 8.0),
			makeItem(1, "Refrigerante 2L", 1, "Bebidas", 9, 10.0),
		),
		makeSale(2, "2024-01-05", 64.0,
			makeItem(3, "Detergente 500ml", 3, "Limpeza", 20, 3.2),
		),
		makeSale(3, "2024-01-05", 25.5,
			makeItem(1, "Refrigerante 2L", 1, "Bebidas", 2, 10.0),
		),
	}

	full, err := Aggregate(sales)
	require.NoError(t, err)
	reduced := AggregateReduced(sales)

	// Os campos sobrepostos dos dois caminhos coincidem exatamente
	assert.Equal(t, full.DailyRevenue, reduced.DailyRevenue)
	assert.Equal(t, full.TopProductsByRevenue, reduced.TopProductsByRevenue)
	assert.Equal(t, full.Statistics, reduced.Statistics)

	// O caminho reduzido não calcula os campos estendidos
	assert.Empty(t, reduced.CategoryShares)
	assert.Empty(t, reduced.ABCAnalysis)
	assert.Empty(t, reduced.WeeklyRevenue)
	assert.Empty(t, reduced.MonthlyRevenue)
}

func TestEmptyResult_SerializaArraysVazios(t *testing.T) {
	raw, err := json.Marshal(EmptyResult())
	require.NoError(t, err)

	// Listas não nulas viram arrays vazios, nunca null
	assert.NotContains(t, string(raw), "null")
	assert.Contains(t, string(raw), `"daily_revenue":[]`)
	assert.Contains(t, string(raw), `"total_sales":0`)
}
