package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TableName is the unqualified name of the books table.
const TableName = "books"

const uniqueViolationCode = "23505"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	table   string
}

// NewPostgresRepo returns a repository over schema.books.
func NewPostgresRepo(db *pgxpool.Pool, schema string, timeout time.Duration) *PostgresRepo {
	ident := pgx.Identifier{TableName}
	if schema != "" {
		ident = pgx.Identifier{schema, TableName}
	}
	return &PostgresRepo{db: db, timeout: timeout, table: ident.Sanitize()}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]Book, error) {
	query := fmt.Sprintf(`SELECT id, "bookName", "bookAuthor" FROM %s ORDER BY id`, r.table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	books, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Book])
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int) (Book, error) {
	query := fmt.Sprintf(`SELECT id, "bookName", "bookAuthor" FROM %s WHERE id = $1`, r.table)

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&b.ID, &b.Name, &b.Author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("find book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) Save(ctx context.Context, b Book) (Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, "bookName", "bookAuthor")
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			"bookName" = EXCLUDED."bookName",
			"bookAuthor" = EXCLUDED."bookAuthor"
		RETURNING id, "bookName", "bookAuthor"`, r.table)

	var out Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, b.ID, b.Name, b.Author).Scan(&out.ID, &out.Name, &out.Author); err != nil {
		return Book{}, fmt.Errorf("save book %d: %w", b.ID, err)
	}
	return out, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, b Book) (Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, "bookName", "bookAuthor")
		VALUES ($1, $2, $3)
		RETURNING id, "bookName", "bookAuthor"`, r.table)

	var out Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, b.ID, b.Name, b.Author).Scan(&out.ID, &out.Name, &out.Author); err != nil {
		if isUniqueViolation(err) {
			return Book{}, fmt.Errorf("%w: id %d", ErrAlreadyExists, b.ID)
		}
		return Book{}, fmt.Errorf("insert book %d: %w", b.ID, err)
	}
	return out, nil
}

func (r *PostgresRepo) DeleteByID(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
