package domain

import "time"

// SaleRecord representa uma venda extraída do banco com seus itens aninhados.
// O conjunto é somente-leitura: a engine de analytics nunca altera a origem.
type SaleRecord struct {
	ID          int64
	CreatedAt   time.Time
	TotalAmount float64
	Items       []*LineItem
}

// LineItem é uma posição da venda com nomes de produto e categoria
// desnormalizados para conveniência na saída.
type LineItem struct {
	ProductID    int64
	ProductName  string
	CategoryID   int64
	CategoryName string
	Quantity     int
	Price        float64
	Subtotal     float64
}

// ReportFilters define o intervalo de datas (inclusivo nas duas pontas)
// usado para filtrar vendas nos relatórios.
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}
