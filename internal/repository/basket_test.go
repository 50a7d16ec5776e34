package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
)

func TestCreateBasket(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO baskets DEFAULT VALUES`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(basketID, now))

	b, err := repo.CreateBasket(context.Background())
	if err != nil {
		t.Fatalf("CreateBasket error: %v", err)
	}
	if b.ID != basketID {
		t.Fatalf("basket id = %v, want %v", b.ID, basketID)
	}
}

func TestGetBasket_ComputesTotal(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, created_at FROM baskets`).
		WithArgs(basketID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(basketID, now))

	lines := pgxmock.NewRows([]string{"product_id", "name", "price", "quantity"}).
		AddRow(int64(1), "Soup", int64(100000), 2).
		AddRow(int64(2), "Bread", int64(20000), 1)
	mock.ExpectQuery(`SELECT l.product_id, p.name, p.price, l.quantity`).
		WithArgs(basketID).
		WillReturnRows(lines)

	contents, err := repo.GetBasket(context.Background(), basketID)
	if err != nil {
		t.Fatalf("GetBasket error: %v", err)
	}
	if contents.Total != 220000 {
		t.Fatalf("total = %d, want 220000", contents.Total)
	}
	if len(contents.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(contents.Items))
	}
}

func TestGetBasket_EmptyIsNotMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectQuery(`SELECT id, created_at FROM baskets`).
		WithArgs(basketID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(basketID, time.Now()))
	mock.ExpectQuery(`SELECT l.product_id, p.name, p.price, l.quantity`).
		WithArgs(basketID).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "name", "price", "quantity"}))

	contents, err := repo.GetBasket(context.Background(), basketID)
	if err != nil {
		t.Fatalf("GetBasket error: %v", err)
	}
	if len(contents.Items) != 0 || contents.Total != 0 {
		t.Fatalf("expected empty basket, got %+v", contents)
	}
}

func TestGetBasket_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectQuery(`SELECT id, created_at FROM baskets`).
		WithArgs(basketID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetBasket(context.Background(), basketID)
	if !errors.Is(err, ErrBasketNotFound) {
		t.Fatalf("expected ErrBasketNotFound, got %v", err)
	}
}

func TestUpsertLine_ReplacesQuantity(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectQuery(`INSERT INTO basket_lines`).
		WithArgs(basketID, int64(1), 3).
		WillReturnRows(pgxmock.NewRows([]string{"basket_id", "product_id", "quantity"}).
			AddRow(basketID, int64(1), 3))

	line, err := repo.UpsertLine(context.Background(), basketID, 1, 3)
	if err != nil {
		t.Fatalf("UpsertLine error: %v", err)
	}
	if line.Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", line.Quantity)
	}
}

func TestUpsertLine_UnknownProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectQuery(`INSERT INTO basket_lines`).
		WithArgs(basketID, int64(99), 1).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			ConstraintName: "basket_lines_product_id_fkey",
		})

	_, err := repo.UpsertLine(context.Background(), basketID, 99, 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestUpsertLine_UnknownBasket(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectQuery(`INSERT INTO basket_lines`).
		WithArgs(basketID, int64(1), 1).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			ConstraintName: "basket_lines_basket_id_fkey",
		})

	_, err := repo.UpsertLine(context.Background(), basketID, 1, 1)
	if !errors.Is(err, ErrBasketNotFound) {
		t.Fatalf("expected ErrBasketNotFound, got %v", err)
	}
}

func TestUpdateLine_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectQuery(`UPDATE basket_lines`).
		WithArgs(basketID, int64(1), 2).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateLine(context.Background(), basketID, 1, 2)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestDeleteLine_Repeat(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectExec(`DELETE FROM basket_lines`).
		WithArgs(basketID, int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM basket_lines`).
		WithArgs(basketID, int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.DeleteLine(context.Background(), basketID, 1); err != nil {
		t.Fatalf("first DeleteLine error: %v", err)
	}

	err := repo.DeleteLine(context.Background(), basketID, 1)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound on repeat delete, got %v", err)
	}
}

func TestDeleteBasket_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	basketID := uuid.New()
	mock.ExpectExec(`DELETE FROM baskets`).
		WithArgs(basketID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteBasket(context.Background(), basketID)
	if !errors.Is(err, ErrBasketNotFound) {
		t.Fatalf("expected ErrBasketNotFound, got %v", err)
	}
}
