package analytics

import (
	"fmt"
	"time"

	"github.com/vfg2006/store-analytics-api/internal/domain"
)

// Documento de entrada da engine: o conjunto completo de vendas com
// granularidade de item, nunca números pré-agregados.
type EngineInput struct {
	Sales []EngineSale `json:"sales"`
}

type EngineSale struct {
	ID          int64        `json:"id"`
	Date        string       `json:"date"`
	TotalAmount float64      `json:"total_amount"`
	Items       []EngineItem `json:"items"`
}

type EngineItem struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Subtotal     float64 `json:"subtotal"`
}

// EngineOutput é o documento de saída da engine. A presença do campo Error
// é o único sinal de falha que os consumidores verificam.
type EngineOutput struct {
	domain.AnalyticsResult
	Error string `json:"error,omitempty"`
}

// EncodeInput converte os registros de domínio para o documento de
// transporte que cruza a fronteira de processo.
func EncodeInput(sales []*domain.SaleRecord) EngineInput {
	input := EngineInput{Sales: make([]EngineSale, 0, len(sales))}

	for _, sale := range sales {
		engineSale := EngineSale{
			ID:          sale.ID,
			Date:        sale.CreatedAt.Format(time.DateOnly),
			TotalAmount: sale.TotalAmount,
			Items:       make([]EngineItem, 0, len(sale.Items)),
		}

		for _, item := range sale.Items {
			engineSale.Items = append(engineSale.Items, EngineItem{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				CategoryID:   item.CategoryID,
				CategoryName: item.CategoryName,
				Quantity:     item.Quantity,
				Price:        item.Price,
				Subtotal:     item.Subtotal,
			})
		}

		input.Sales = append(input.Sales, engineSale)
	}

	return input
}

// DecodeInput converte o documento de transporte de volta para registros de
// domínio. Usado pelo executável da engine ao ler a entrada.
func DecodeInput(input EngineInput) ([]*domain.SaleRecord, error) {
	sales := make([]*domain.SaleRecord, 0, len(input.Sales))

	for _, engineSale := range input.Sales {
		createdAt, err := time.Parse(time.DateOnly, engineSale.Date)
		if err != nil {
			return nil, fmt.Errorf("data inválida na venda %d: %w", engineSale.ID, err)
		}

		sale := &domain.SaleRecord{
			ID:          engineSale.ID,
			CreatedAt:   createdAt,
			TotalAmount: engineSale.TotalAmount,
			Items:       make([]*domain.LineItem, 0, len(engineSale.Items)),
		}

		for _, item := range engineSale.Items {
			sale.Items = append(sale.Items, &domain.LineItem{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				CategoryID:   item.CategoryID,
				CategoryName: item.CategoryName,
				Quantity:     item.Quantity,
				Price:        item.Price,
				Subtotal:     item.Subtotal,
			})
		}

		sales = append(sales, sale)
	}

	return sales, nil
}
