package clients

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	postgresInstance Postgres
	postgresErr      error
	postgresOnce     sync.Once
)

// Postgres wraps the shared pgx pool the db layer loads products
// through.
type Postgres struct {
	DB *pgxpool.Pool
}

// GetPostgresClient creates the process-wide pool on first call and
// returns the same instance (or first error) afterwards.
func GetPostgresClient(ctx context.Context, dsn string) (Postgres, error) {
	postgresOnce.Do(func() {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			postgresErr = fmt.Errorf("[PostgresClient] failed to create PostgreSQL pool: %w", err)
			return
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			postgresErr = fmt.Errorf("[PostgresClient] failed to ping PostgreSQL: %w", err)
			return
		}

		postgresInstance = Postgres{
			DB: pool,
		}
	})

	return postgresInstance, postgresErr
}

func (p Postgres) Close() {
	if p.DB != nil {
		p.DB.Close()
	}
}
