package postgres

import (
	"context"
	"fmt"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo tablas Orders y Delivery.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido con el total ya calculado.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO Orders (Creation_date, Total_price, Item_quantity, Client_Id, Fruit_Id)
		VALUES ($1::date, $2, $3, $4, $5)
		RETURNING Id`
	err := r.q.QueryRow(ctx, query,
		order.CreationDate, order.TotalPrice, order.Quantity, order.ClientID, order.FruitID,
	).Scan(&order.ID)
	if err != nil {
		return classify("insert order", err)
	}
	return nil
}

// HistoryByClient pedidos del cliente con su entrega, si existe.
func (r *OrderRepo) HistoryByClient(ctx context.Context, clientID int64) ([]entity.OrderHistoryRow, error) {
	query := `
		SELECT o.Id, o.Creation_date, d.Delivery_date, f.Name, o.Total_price, o.Item_quantity
		FROM Orders o
		LEFT JOIN Delivery d ON d.Order_Id = o.Id
		JOIN Fruits f ON f.Id = o.Fruit_Id
		WHERE o.Client_Id = $1
		ORDER BY o.Creation_date DESC, o.Id DESC`
	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderHistoryRow
	for rows.Next() {
		var o entity.OrderHistoryRow
		if err := rows.Scan(&o.OrderID, &o.CreationDate, &o.DeliveryDate, &o.FruitName, &o.TotalPrice, &o.Quantity); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
