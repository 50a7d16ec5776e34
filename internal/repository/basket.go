package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmeshcher/menu-order-system/internal/model"
)

// CreateBasket создаёт новую пустую корзину.
func (r *PostgresRepository) CreateBasket(ctx context.Context) (*model.Basket, error) {
	var b model.Basket
	err := r.db.QueryRow(ctx,
		`INSERT INTO baskets DEFAULT VALUES RETURNING id, created_at`,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert basket: %w", err)
	}
	return &b, nil
}

// GetBasket возвращает корзину, её строки с актуальными ценами товаров
// и вычисленную сумму. Существование корзины проверяется отдельно от
// существования строк: пустая корзина — это не отсутствующая корзина.
func (r *PostgresRepository) GetBasket(ctx context.Context, basketID uuid.UUID) (*model.BasketContents, error) {
	var b model.Basket
	err := r.db.QueryRow(ctx,
		`SELECT id, created_at FROM baskets WHERE id = $1`,
		basketID,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBasketNotFound
		}
		return nil, fmt.Errorf("get basket: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT l.product_id, p.name, p.price, l.quantity
		 FROM basket_lines l
		 JOIN products p ON p.id = l.product_id
		 WHERE l.basket_id = $1
		 ORDER BY l.product_id`,
		basketID,
	)
	if err != nil {
		return nil, fmt.Errorf("select basket lines: %w", err)
	}
	defer rows.Close()

	contents := &model.BasketContents{Basket: b, Items: []model.BasketItem{}}
	for rows.Next() {
		var item model.BasketItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan basket line: %w", err)
		}
		contents.Items = append(contents.Items, item)
		contents.Total += int64(item.Quantity) * item.Price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return contents, nil
}

// DeleteBasket удаляет корзину вместе со строками. Строки удаляются каскадно
// на уровне схемы, поэтому операция атомарна без явной транзакции.
func (r *PostgresRepository) DeleteBasket(ctx context.Context, basketID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM baskets WHERE id = $1`, basketID)
	if err != nil {
		return fmt.Errorf("delete basket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBasketNotFound
	}
	return nil
}

// UpsertLine добавляет строку корзины. Если строка для пары
// (корзина, товар) уже существует, её количество заменяется новым,
// а не суммируется.
func (r *PostgresRepository) UpsertLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error) {
	var line model.BasketLine
	err := r.db.QueryRow(ctx,
		`INSERT INTO basket_lines (basket_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (basket_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
		 RETURNING basket_id, product_id, quantity`,
		basketID, productID, quantity,
	).Scan(&line.BasketID, &line.ProductID, &line.Quantity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			if strings.Contains(pgErr.ConstraintName, "product") {
				return nil, ErrProductNotFound
			}
			return nil, ErrBasketNotFound
		}
		return nil, fmt.Errorf("upsert basket line: %w", err)
	}
	return &line, nil
}

// UpdateLine заменяет количество в существующей строке корзины.
func (r *PostgresRepository) UpdateLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error) {
	var line model.BasketLine
	err := r.db.QueryRow(ctx,
		`UPDATE basket_lines
		 SET quantity = $3
		 WHERE basket_id = $1 AND product_id = $2
		 RETURNING basket_id, product_id, quantity`,
		basketID, productID, quantity,
	).Scan(&line.BasketID, &line.ProductID, &line.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("update basket line: %w", err)
	}
	return &line, nil
}

// GetLine возвращает строку корзины.
func (r *PostgresRepository) GetLine(ctx context.Context, basketID uuid.UUID, productID int64) (*model.BasketLine, error) {
	var line model.BasketLine
	err := r.db.QueryRow(ctx,
		`SELECT basket_id, product_id, quantity
		 FROM basket_lines
		 WHERE basket_id = $1 AND product_id = $2`,
		basketID, productID,
	).Scan(&line.BasketID, &line.ProductID, &line.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("get basket line: %w", err)
	}
	return &line, nil
}

// DeleteLine удаляет строку корзины. Повторное удаление той же строки
// возвращает ErrLineNotFound, а не ошибку хранилища.
func (r *PostgresRepository) DeleteLine(ctx context.Context, basketID uuid.UUID, productID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM basket_lines WHERE basket_id = $1 AND product_id = $2`,
		basketID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete basket line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}
