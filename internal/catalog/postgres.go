package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource loads the catalog from an assessments table. The table is
// read-only input; reloads build a fresh snapshot from a single query.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource establishes a connection pool to the database.
func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

// Close closes the connection pool.
func (p *PostgresSource) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Load queries all assessments in insertion order and builds a snapshot.
func (p *PostgresSource) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT name, url, description, duration_minutes, test_types,
		        remote_testing_support, adaptive_irt_support
		 FROM assessments
		 ORDER BY id`)
	if err != nil {
		return nil, &LoadError{Source: "postgres", Message: "failed to query assessments", Cause: err}
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec      Record
			minutes  *int
			rawTypes []string
		)
		if err := rows.Scan(&rec.Name, &rec.URL, &rec.Description, &minutes, &rawTypes,
			&rec.RemoteTestingSupport, &rec.AdaptiveIRTSupport); err != nil {
			return nil, &LoadError{Source: "postgres", Message: "failed to scan assessment row", Cause: err}
		}
		// NULL duration_minutes means the assessment has no fixed duration.
		if minutes == nil {
			rec.Duration = Duration{Variable: true}
		} else {
			rec.Duration = Duration{Minutes: *minutes}
		}
		rec.TestTypes = make([]TestType, len(rawTypes))
		for i, t := range rawTypes {
			rec.TestTypes[i] = TestType(t)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil && err != pgx.ErrNoRows {
		return nil, &LoadError{Source: "postgres", Message: "failed to read assessments", Cause: err}
	}

	return NewSnapshot(records)
}
