package repositories

import (
	"context"
	"database/sql"
	"delivery-cost-service/internal/domain"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type quoteRepo interface {
	Save(ctx context.Context, q *domain.Quote) error
	Get(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, limit int) ([]*domain.Quote, error)
}

func testQuote(id string, created time.Time) *domain.Quote {
	return &domain.Quote{
		ID:          id,
		Origin:      "1 Main St",
		Destination: "2 Elm St",
		DistanceKm:  5,
		Size:        domain.SizeSmall,
		Fragile:     true,
		Load:        domain.LoadHigh,
		Breakdown: domain.CostBreakdown{
			BaseCost:    250,
			SizeCost:    100,
			FragileCost: 300,
			Subtotal:    650,
			Multiplier:  1.4,
			Total:       910,
		},
		CreatedAt: created,
	}
}

func exerciseQuoteRepo(t *testing.T, repo quoteRepo) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	first := testQuote("q-1", base)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "q-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Breakdown != first.Breakdown {
		t.Fatalf("breakdown = %+v, want %+v", got.Breakdown, first.Breakdown)
	}
	if got.Size != domain.SizeSmall || got.Load != domain.LoadHigh || !got.Fragile {
		t.Fatalf("fields not round-tripped: %+v", got)
	}
	if !got.CreatedAt.Equal(base) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, base)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("missing quote err = %v", err)
	}

	for i := 2; i <= 4; i++ {
		q := testQuote(fmt.Sprintf("q-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := repo.Save(ctx, q); err != nil {
			t.Fatalf("save q-%d: %v", i, err)
		}
	}

	list, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "q-4" || list[1].ID != "q-3" {
		ids := make([]string, 0, len(list))
		for _, q := range list {
			ids = append(ids, q.ID)
		}
		t.Fatalf("list ids = %v, want [q-4 q-3]", ids)
	}

	if err := repo.Save(ctx, first); err == nil {
		t.Fatal("expected duplicate id to fail")
	}
}

func TestSqliteQuoteRepository(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db, SQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := InitSchema(db, SQLite); err != nil {
		t.Fatalf("init schema twice: %v", err)
	}

	exerciseQuoteRepo(t, NewSqliteQuoteRepository(db))
}

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestSQLQuoteRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db, Postgres); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM quotes WHERE id LIKE 'q-%'`); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	exerciseQuoteRepo(t, NewSQLQuoteRepository(db))
}

func TestInitSchemaRejectsUnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := InitSchema(db, Dialect("oracle")); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
	if err := InitSchema(nil, SQLite); err == nil {
		t.Fatal("expected error for nil db")
	}
}
