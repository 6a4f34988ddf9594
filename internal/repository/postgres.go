// Package repository содержит реализацию доступа к расходам в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresRepository предоставляет доступ к расходам в PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// List возвращает расходы текущего пользователя. Без пользователя в контексте возвращаются все расходы.
func (r *PostgresRepository) List(ctx context.Context) ([]model.Bill, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, status, date, file_url, file_name, name, type, amount::text, vat, pct, commentary, email
		 FROM bills
		 WHERE $1 = '' OR email = $1`,
		session.EmailFromContext(ctx),
	)
	if err != nil {
		return nil, classify("select bills", err)
	}
	defer rows.Close()

	var res []model.Bill
	for rows.Next() {
		var (
			b      model.Bill
			status string
			amount string
		)
		if err := rows.Scan(&b.ID, &status, &b.Date, &b.FileURL, &b.FileName, &b.Name, &b.Type,
			&amount, &b.VAT, &b.PCT, &b.Commentary, &b.Email); err != nil {
			return nil, classify("scan bill", err)
		}

		b.Status = model.BillStatus(status)
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount of bill %s: %w", b.ID, err)
		}

		res = append(res, b)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("rows error", err)
	}

	return res, nil
}

// classify переводит ошибку PostgreSQL в ошибку хранилища с HTTP-кодом.
func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	code := http.StatusInternalServerError

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		code = http.StatusNotFound
	}

	return fmt.Errorf("%s: %w", op, &store.StatusError{
		Code:    code,
		Message: fmt.Sprintf("Erreur %d: %v", code, err),
	})
}
