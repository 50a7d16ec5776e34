package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/paging"
)

var productColumns = []string{"id", "name", "price", "description", "image", "category_id", "created_at", "updated_at"}

// ProductFilter задаёт необязательные фильтры списка товаров.
// Фильтры взаимоисключающие: при заданной категории поиск игнорируется.
type ProductFilter struct {
	CategoryID *int64
	Search     string
}

// CreateCategory создаёт новую категорию меню.
func (r *PostgresRepository) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`,
		name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

// ListCategories возвращает страницу категорий, упорядоченных по идентификатору.
func (r *PostgresRepository) ListCategories(ctx context.Context, p paging.Params) ([]model.Category, error) {
	sql, args, err := psql.
		Select("id", "name").
		From("categories").
		OrderBy("id ASC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

// UpdateCategory применяет частичное обновление категории и возвращает обновлённую строку.
func (r *PostgresRepository) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	if patch.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	sql, args, err := psql.
		Update("categories").
		Set("name", *patch.Name).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category update: %w", err)
	}

	var c model.Category
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	return &c, nil
}

// DeleteCategory удаляет категорию. Товары категории не удаляются:
// их ссылка на категорию обнуляется на уровне схемы.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// CreateProduct создаёт новую позицию меню.
func (r *PostgresRepository) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	var created model.Product
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, price, description, image, category_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, price, description, image, category_id, created_at, updated_at`,
		p.Name, p.Price, p.Description, p.Image, p.CategoryID,
	).Scan(&created.ID, &created.Name, &created.Price, &created.Description,
		&created.Image, &created.CategoryID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &created, nil
}

// GetProductByID возвращает товар по идентификатору.
func (r *PostgresRepository) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, price, description, image, category_id, created_at, updated_at
		 FROM products
		 WHERE id = $1`,
		id,
	)

	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
		&p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

// ListProducts возвращает страницу товаров. Сортировка стабильна:
// по дате создания, затем по идентификатору, чтобы страницы не
// перекрывались при параллельных вставках.
func (r *PostgresRepository) ListProducts(ctx context.Context, filter ProductFilter, p paging.Params) ([]model.Product, error) {
	qb := psql.
		Select(productColumns...).
		From("products")

	switch {
	case filter.CategoryID != nil:
		qb = qb.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	case filter.Search != "":
		pattern := "%" + filter.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	sql, args, err := qb.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var prod model.Product
		if err := rows.Scan(&prod.ID, &prod.Name, &prod.Price, &prod.Description,
			&prod.Image, &prod.CategoryID, &prod.CreatedAt, &prod.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, prod)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// UpdateProduct применяет частичное обновление товара и возвращает обновлённую
// строку. Имена колонок известны на этапе компиляции, значения передаются
// только через параметры запроса.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	qb := psql.Update("products")
	if patch.Name != nil {
		qb = qb.Set("name", *patch.Name)
	}
	if patch.Price != nil {
		qb = qb.Set("price", *patch.Price)
	}
	if patch.Description != nil {
		qb = qb.Set("description", *patch.Description)
	}
	if patch.Image != nil {
		qb = qb.Set("image", *patch.Image)
	}
	if patch.CategoryID != nil {
		qb = qb.Set("category_id", *patch.CategoryID)
	}

	sql, args, err := qb.
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name, price, description, image, category_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product update: %w", err)
	}

	var p model.Product
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Name, &p.Price,
		&p.Description, &p.Image, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return &p, nil
}

// DeleteProduct удаляет товар.
func (r *PostgresRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
