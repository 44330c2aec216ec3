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

// SQLite-backed implementation of the QuoteRepository port.
// Timestamps are stored as unix milliseconds.
type SqliteQuoteRepository struct{ DB *sql.DB }

func NewSqliteQuoteRepository(db *sql.DB) *SqliteQuoteRepository {
	return &SqliteQuoteRepository{DB: db}
}

func (s *SqliteQuoteRepository) Save(ctx context.Context, q *domain.Quote) (err error) {
	defer obs.Time(ctx, "quotes.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("sqlite quote repository: DB is nil")
	}

	query := `
	INSERT INTO quotes (` + quoteColumns + `,
		created_at_ms
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	args := append(quoteArgs(q), q.CreatedAt.UnixMilli())
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quote: insert id=%s: %w", q.ID, err)
	}

	return nil
}

func (s *SqliteQuoteRepository) Get(ctx context.Context, id string) (_ *domain.Quote, err error) {
	defer obs.Time(ctx, "quotes.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite quote repository: DB is nil")
	}

	query := `SELECT ` + quoteColumns + `, created_at_ms FROM quotes WHERE id = ?;`

	var row quoteRow
	var createdMs int64
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(append(row.dest(), &createdMs)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("get quote: scan id=%s: %w", id, err)
	}

	q := row.quote()
	q.CreatedAt = time.UnixMilli(createdMs).UTC()
	return q, nil
}

func (s *SqliteQuoteRepository) List(ctx context.Context, limit int) (_ []*domain.Quote, err error) {
	defer obs.Time(ctx, "quotes.sqlite.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite quote repository: DB is nil")
	}

	query := `
	SELECT ` + quoteColumns + `,
		created_at_ms
	FROM quotes
	ORDER BY created_at_ms DESC, id
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list quotes: query quotes table: %w", err)
	}
	defer rows.Close()

	quotes := make([]*domain.Quote, 0, clampLimit(limit))
	for rows.Next() {
		var row quoteRow
		var createdMs int64
		if err := rows.Scan(append(row.dest(), &createdMs)...); err != nil {
			return nil, fmt.Errorf("list quotes: scan row: %w", err)
		}
		q := row.quote()
		q.CreatedAt = time.UnixMilli(createdMs).UTC()
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: row iteration: %w", err)
	}

	return quotes, nil
}
