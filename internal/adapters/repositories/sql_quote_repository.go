package repositories

import (
	"context"
	"database/sql"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the QuoteRepository port (pgx stdlib driver).
type SQLQuoteRepository struct{ DB *sql.DB }

func NewSQLQuoteRepository(db *sql.DB) *SQLQuoteRepository {
	return &SQLQuoteRepository{DB: db}
}

func (s *SQLQuoteRepository) Save(ctx context.Context, q *domain.Quote) (err error) {
	defer obs.Time(ctx, "quotes.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("sql quote repository: DB is nil")
	}

	query := `
	INSERT INTO quotes (` + quoteColumns + `,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	args := append(quoteArgs(q), q.CreatedAt)
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quote: insert id=%s: %w", q.ID, err)
	}

	return nil
}

func (s *SQLQuoteRepository) Get(ctx context.Context, id string) (_ *domain.Quote, err error) {
	defer obs.Time(ctx, "quotes.sql.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql quote repository: DB is nil")
	}

	query := `SELECT ` + quoteColumns + `, created_at FROM quotes WHERE id = $1;`

	var row quoteRow
	var created time.Time
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(append(row.dest(), &created)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("get quote: scan id=%s: %w", id, err)
	}

	q := row.quote()
	q.CreatedAt = created.UTC()
	return q, nil
}

func (s *SQLQuoteRepository) List(ctx context.Context, limit int) (_ []*domain.Quote, err error) {
	defer obs.Time(ctx, "quotes.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql quote repository: DB is nil")
	}

	query := `
	SELECT ` + quoteColumns + `,
		created_at
	FROM quotes
	ORDER BY created_at DESC, id
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list quotes: query quotes table: %w", err)
	}
	defer rows.Close()

	quotes := make([]*domain.Quote, 0, clampLimit(limit))
	for rows.Next() {
		var row quoteRow
		var created time.Time
		if err := rows.Scan(append(row.dest(), &created)...); err != nil {
			return nil, fmt.Errorf("list quotes: scan row: %w", err)
		}
		q := row.quote()
		q.CreatedAt = created.UTC()
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: row iteration: %w", err)
	}

	return quotes, nil
}
