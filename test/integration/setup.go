package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.MaxConns = 10
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProduct inserts a clothing product with sizes S, M and L.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name, price string, stock int) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (name, description, price, images, category, stock, sizes)
		 VALUES ($1, '', $2, '{}', 'CLOTHING', $3, '{S,M,L}')
		 RETURNING id`,
		name, decimal.RequireFromString(price), stock,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// StockOf returns the current stock of a product.
func StockOf(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) int {
	t.Helper()

	var stock int
	if err := pool.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", id).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock: %v", err)
	}
	return stock
}

// SetStock overwrites the stock of a product.
func SetStock(t *testing.T, pool *pgxpool.Pool, id uuid.UUID, stock int) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "UPDATE products SET stock = $2 WHERE id = $1", id, stock); err != nil {
		t.Fatalf("failed to set stock: %v", err)
	}
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE wishlist_items, wishlists, order_items, orders, cart_items, carts, products, users CASCADE")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// memoryImageStore keeps uploads in memory.
type memoryImageStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func newMemoryImageStore() *memoryImageStore {
	return &memoryImageStore{uploads: map[string][]byte{}}
}

func (s *memoryImageStore) Upload(_ context.Context, fileName, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://images.test/" + uuid.NewString() + "/" + fileName
	s.uploads[url] = data
	return url, nil
}

// recordingNotifier captures order notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.OrderNotification
}

func (n *recordingNotifier) NotifyOrderPlaced(_ context.Context, msg model.OrderNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) all() []model.OrderNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.OrderNotification(nil), n.sent...)
}
