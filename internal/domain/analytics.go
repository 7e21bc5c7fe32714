package domain

// Classes da classificação ABC por contribuição acumulada de receita.
const (
	ABCClassA = "A"
	ABCClassB = "B"
	ABCClassC = "C"
)

// RevenueBucket é um ponto da série diária de receita. Buckets sem vendas
// são omitidos da série (série esparsa), nunca preenchidos com zero.
type RevenueBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// PeriodBucket é um ponto das séries semanal (semana ISO) e mensal.
type PeriodBucket struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// ProductRank é uma entrada dos rankings de produtos. A mesma agregação
// alimenta os dois rankings, mudando apenas a chave de ordenação.
type ProductRank struct {
	ProductName string  `json:"product_name"`
	Revenue     float64 `json:"revenue"`
	Quantity    int     `json:"quantity"`
}

// CategoryShare é o percentual da receita total atribuível a uma categoria.
type CategoryShare struct {
	Category string  `json:"category"`
	Share    float64 `json:"share"`
}

// SaleStatistics são as estatísticas descritivas sobre os totais por venda.
// StdDev é o desvio padrão populacional (divisão por N, não N-1).
type SaleStatistics struct {
	TotalRevenue float64 `json:"total_revenue"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	TotalSales   int     `json:"total_sales"`
}

// ABCItem é uma entrada da classificação ABC de produtos.
type ABCItem struct {
	ProductName string `json:"product_name"`
	Class       string `json:"class"`
}

// AnalyticsResult é o pacote completo de analytics calculado por requisição.
// É efêmero: construído a partir de uma consulta, consumido e descartado.
type AnalyticsResult struct {
	DailyRevenue          []RevenueBucket `json:"daily_revenue"`
	WeeklyRevenue         []PeriodBucket  `json:"weekly_revenue"`
	MonthlyRevenue        []PeriodBucket  `json:"monthly_revenue"`
	TopProductsByRevenue  []ProductRank   `json:"top_products_by_revenue"`
	TopProductsByQuantity []ProductRank   `json:"top_products_by_quantity"`
	CategoryShares        []CategoryShare `json:"category_shares"`
	Statistics            SaleStatistics  `json:"statistics"`
	ABCAnalysis           []ABCItem       `json:"abc_analysis"`
}

// AnalyticsReport é a resposta entregue aos consumidores. Degraded indica
// que a engine configurada falhou e o resultado veio do agregador reduzido
// em processo — nunca uma mistura parcial dos dois caminhos.
type AnalyticsReport struct {
	ReportID    string           `json:"report_id"`
	Filters     *ReportFilters   `json:"filters"`
	Degraded    bool             `json:"degraded"`
	EngineError string           `json:"engine_error,omitempty"`
	Analytics   *AnalyticsResult `json:"analytics"`
}

// SalesReport é o resumo consumido pela página de relatórios.
type SalesReport struct {
	DateFrom     string        `json:"date_from"`
	DateTo       string        `json:"date_to"`
	TotalRevenue float64       `json:"total_revenue"`
	TotalCount   int           `json:"total_count"`
	AverageCheck float64       `json:"average_check"`
	TopProducts  []ProductRank `json:"top_products"`
	Degraded     bool          `json:"degraded"`
}
