package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/store-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/store-analytics-api/internal/domain"
)

const (
	salesTable     = "sales s"
	saleItemsTable = "sale_items si"
)

type SalesRepository interface {
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.SaleRecord, error)
}

type salesRepository struct {
	conn *postgres.Connection
}

func NewSalesRepository(conn *postgres.Connection) SalesRepository {
	return &salesRepository{
		conn: conn,
	}
}

// GetByDateRange retorna todas as vendas cuja data cai no intervalo
// [startDate, endDate], inclusivo nas duas pontas, cada uma populada com
// seus itens e os nomes desnormalizados de produto e categoria. São sempre
// exatamente duas queries, independente da quantidade de vendas.
func (r *salesRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.SaleRecord, error) {
	query, args, err := squirrel.
		Select("s.id, s.created_at, s.total_amount").
		From(salesTable).
		Where(squirrel.GtOrEq{"s.created_at::date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"s.created_at::date": endDate.Format(time.DateOnly)}).
		OrderBy("s.created_at ASC", "s.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.SaleRecord, 0)
	salesByID := make(map[int64]*domain.SaleRecord)

	for rows.Next() {
		sale := &domain.SaleRecord{}
		if err := rows.Scan(&sale.ID, &sale.CreatedAt, &sale.TotalAmount); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
		salesByID[sale.ID] = sale
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if len(sales) == 0 {
		return sales, nil
	}

	if err := r.loadItems(ctx, salesByID); err != nil {
		return nil, err
	}

	return sales, nil
}

// loadItems carrega os itens de todas as vendas de uma vez, com join em
// produtos e categorias para os nomes desnormalizados.
func (r *salesRepository) loadItems(ctx context.Context, salesByID map[int64]*domain.SaleRecord) error {
	saleIDs := make([]int64, 0, len(salesByID))
	for id := range salesByID {
		saleIDs = append(saleIDs, id)
	}

	query, args, err := squirrel.
		Select("si.sale_id, p.id, p.name, c.id, c.name, si.quantity, si.price, si.subtotal").
		From(saleItemsTable).
		Join("products p ON p.id = si.product_id").
		Join("categories c ON c.id = p.category_id").
		Where(squirrel.Expr("si.sale_id = ANY(?)", pq.Array(saleIDs))).
		OrderBy("si.sale_id ASC", "si.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de itens: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query de itens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saleID int64
		item := &domain.LineItem{}

		err := rows.Scan(
			&saleID,
			&item.ProductID,
			&item.ProductName,
			&item.CategoryID,
			&item.CategoryName,
			&item.Quantity,
			&item.Price,
			&item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("erro ao escanear item de venda: %w", err)
		}

		if sale, ok := salesByID[saleID]; ok {
			sale.Items = append(sale.Items, item)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de itens: %w", err)
	}

	return nil
}
