package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/paging"
)

// CreateOrder оформляет заказ из корзины. Строки и сумма копируются
// в заказ: заказ остаётся валидным после удаления корзины. Заказ и его
// первое событие статуса NEW создаются в одной транзакции — частичное
// применение невозможно. Сама корзина операцией не затрагивается.
func (r *PostgresRepository) CreateOrder(ctx context.Context, basketID uuid.UUID, name string) (*model.Order, []model.OrderLine, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM baskets WHERE id = $1)`,
		basketID,
	).Scan(&exists)
	if err != nil {
		return nil, nil, fmt.Errorf("check basket: %w", err)
	}
	if !exists {
		return nil, nil, ErrBasketNotFound
	}

	rows, err := tx.Query(ctx,
		`SELECT l.product_id, p.name, p.price, l.quantity
		 FROM basket_lines l
		 JOIN products p ON p.id = l.product_id
		 WHERE l.basket_id = $1
		 ORDER BY l.product_id`,
		basketID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("select basket lines: %w", err)
	}

	var lines []model.OrderLine
	var total int64
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Price, &line.Quantity); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan basket line: %w", err)
		}
		lines = append(lines, line)
		total += int64(line.Quantity) * line.Price
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}

	if len(lines) == 0 {
		return nil, nil, ErrBasketEmpty
	}

	order := model.Order{Name: name, Total: total}
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (name, total) VALUES ($1, $2) RETURNING id, created_at`,
		name, total,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert order: %w", err)
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO order_lines (order_id, product_id, name, price, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			order.ID, lines[i].ProductID, lines[i].Name, lines[i].Price, lines[i].Quantity,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("insert order line: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO order_status_events (order_id, status) VALUES ($1, $2)`,
		order.ID, string(model.OrderStatusNew),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("insert initial status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit tx: %w", err)
	}

	return &order, lines, nil
}

// GetOrder возвращает заказ, его строки и текущий статус.
func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	err := r.db.QueryRow(ctx,
		`SELECT o.id, o.name, o.total, o.created_at, e.status
		 FROM orders o
		 JOIN LATERAL (
		     SELECT status FROM order_status_events
		     WHERE order_id = o.id
		     ORDER BY occurred_at DESC, id DESC
		     LIMIT 1
		 ) e ON true
		 WHERE o.id = $1`,
		orderID,
	).Scan(&detail.Order.ID, &detail.Order.Name, &detail.Order.Total,
		&detail.Order.CreatedAt, &detail.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT order_id, product_id, name, price, quantity
		 FROM order_lines
		 WHERE order_id = $1
		 ORDER BY product_id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.OrderID, &line.ProductID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		detail.Lines = append(detail.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &detail, nil
}

// GetStatusHistory возвращает события статуса заказа в порядке их наступления.
// По построению история непуста: первое событие создаётся вместе с заказом.
func (r *PostgresRepository) GetStatusHistory(ctx context.Context, orderID int64) ([]model.OrderStatusEvent, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`,
		orderID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, status, occurred_at
		 FROM order_status_events
		 WHERE order_id = $1
		 ORDER BY occurred_at ASC, id ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select status events: %w", err)
	}
	defer rows.Close()

	var events []model.OrderStatusEvent
	for rows.Next() {
		var e model.OrderStatusEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan status event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return events, nil
}

// AppendStatusEvent добавляет событие статуса к заказу. Строка заказа
// блокируется на время транзакции, чтобы сериализовать параллельные
// попытки перевода статуса. Переход проверяется по последнему событию:
// журнал только дописывается, история никогда не переписывается.
func (r *PostgresRepository) AppendStatusEvent(ctx context.Context, orderID int64, status model.OrderStatus) (*model.OrderStatusEvent, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var dummy int
	err = tx.QueryRow(ctx, `SELECT 1 FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&dummy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}

	var current model.OrderStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM order_status_events
		 WHERE order_id = $1
		 ORDER BY occurred_at DESC, id DESC
		 LIMIT 1`,
		orderID,
	).Scan(&current)
	if err != nil {
		return nil, fmt.Errorf("get current status: %w", err)
	}

	if !model.CanTransition(current, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, status)
	}

	event := model.OrderStatusEvent{OrderID: orderID, Status: status}
	err = tx.QueryRow(ctx,
		`INSERT INTO order_status_events (order_id, status)
		 VALUES ($1, $2)
		 RETURNING id, occurred_at`,
		orderID, string(status),
	).Scan(&event.ID, &event.OccurredAt)
	if err != nil {
		return nil, fmt.Errorf("insert status event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &event, nil
}

// ListOrders возвращает страницу заказов, новые первыми.
func (r *PostgresRepository) ListOrders(ctx context.Context, p paging.Params) ([]model.Order, error) {
	sql, args, err := psql.
		Select("id", "name", "total", "created_at").
		From("orders").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}
