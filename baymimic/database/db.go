package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// DB bundles the pgx pool (raw analytic SQL) with the bun handle (models,
// transactions). Both point at the same server.
type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(cfg DBConfig) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) QueryWithLog(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "query"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return rows, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "query"),
		slog.String("query", sql),
		slog.Duration("took", duration),
	)
	return rows, nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// Ping verifies both database handles are working.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

// InitializeSchema creates all marketplace tables and indexes. Tables are
// created in foreign-key dependency order.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.UserAccount)(nil),
		(*models.Category)(nil),
		(*models.Listing)(nil),
		(*models.ListingWatch)(nil),
		(*models.Bid)(nil),
		(*models.Transaction)(nil),
		(*models.Feedback)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	constraints := []string{
		`ALTER TABLE user_accounts ADD CONSTRAINT user_accounts_rating_range CHECK (rating >= 0 AND rating <= 5)`,
		`ALTER TABLE user_accounts ADD CONSTRAINT user_accounts_user_type CHECK (user_type IN ('buyer','seller','both'))`,
		`ALTER TABLE user_accounts ADD CONSTRAINT user_accounts_status CHECK (account_status IN ('active','suspended','closed'))`,
		`ALTER TABLE listings ADD CONSTRAINT listings_status CHECK (listing_status IN ('active','ended','cancelled','sold'))`,
		`ALTER TABLE listings ADD CONSTRAINT listings_seller_fk FOREIGN KEY (seller_id) REFERENCES user_accounts (user_id)`,
		`ALTER TABLE listings ADD CONSTRAINT listings_category_fk FOREIGN KEY (category_id) REFERENCES categories (category_id)`,
		`ALTER TABLE listing_watches ADD CONSTRAINT listing_watches_user_fk FOREIGN KEY (user_id) REFERENCES user_accounts (user_id)`,
		`ALTER TABLE listing_watches ADD CONSTRAINT listing_watches_listing_fk FOREIGN KEY (listing_id) REFERENCES listings (listing_id)`,
		`ALTER TABLE bids ADD CONSTRAINT bids_amount_positive CHECK (bid_amount > 0)`,
		`ALTER TABLE bids ADD CONSTRAINT bids_status CHECK (bid_status IN ('active','retracted','winning','outbid'))`,
		`ALTER TABLE bids ADD CONSTRAINT bids_listing_fk FOREIGN KEY (listing_id) REFERENCES listings (listing_id)`,
		`ALTER TABLE bids ADD CONSTRAINT bids_bidder_fk FOREIGN KEY (bidder_id) REFERENCES user_accounts (user_id)`,
		`ALTER TABLE transactions ADD CONSTRAINT transactions_bid_fk FOREIGN KEY (bid_id) REFERENCES bids (bid_id)`,
		`ALTER TABLE transactions ADD CONSTRAINT transactions_listing_fk FOREIGN KEY (listing_id) REFERENCES listings (listing_id)`,
		`ALTER TABLE transactions ADD CONSTRAINT transactions_payment_status CHECK (payment_status IN ('pending','paid','refunded'))`,
		`ALTER TABLE transactions ADD CONSTRAINT transactions_shipping_status CHECK (shipping_status IN ('pending','shipped','delivered'))`,
		`ALTER TABLE feedback ADD CONSTRAINT feedback_rating_range CHECK (rating >= 1 AND rating <= 5)`,
		`ALTER TABLE feedback ADD CONSTRAINT feedback_sentiment CHECK (sentiment IN ('positive','neutral','negative'))`,
		`ALTER TABLE feedback ADD CONSTRAINT feedback_transaction_fk FOREIGN KEY (transaction_id) REFERENCES transactions (transaction_id)`,
		`ALTER TABLE feedback ADD CONSTRAINT feedback_author_fk FOREIGN KEY (author_user_id) REFERENCES user_accounts (user_id)`,
		`ALTER TABLE feedback ADD CONSTRAINT feedback_target_fk FOREIGN KEY (target_user_id) REFERENCES user_accounts (user_id)`,
	}

	for _, ddl := range constraints {
		if err := db.addConstraint(ctx, ddl); err != nil {
			return err
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_listings_seller_id ON listings(seller_id);",
		"CREATE INDEX IF NOT EXISTS idx_listings_category_id ON listings(category_id);",
		"CREATE INDEX IF NOT EXISTS idx_listings_status_end_date ON listings(listing_status, end_date);",
		"CREATE INDEX IF NOT EXISTS idx_listings_active ON listings(end_date) WHERE listing_status = 'active';",
		"CREATE INDEX IF NOT EXISTS idx_bids_listing_amount ON bids(listing_id, bid_amount DESC, bid_time ASC);",
		"CREATE INDEX IF NOT EXISTS idx_bids_bidder_id ON bids(bidder_id);",
		"CREATE INDEX IF NOT EXISTS idx_watches_listing_id ON listing_watches(listing_id);",
		"CREATE INDEX IF NOT EXISTS idx_transactions_listing_id ON transactions(listing_id);",
		"CREATE INDEX IF NOT EXISTS idx_feedback_target ON feedback(target_user_id);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// addConstraint applies a single ALTER TABLE ... ADD CONSTRAINT, tolerating
// re-runs against an already-initialized schema.
func (db *DB) addConstraint(ctx context.Context, ddl string) error {
	_, err := db.pool.Exec(ctx, ddl)
	if err != nil {
		var pgErr *pgconn.PgError
		// 42710: constraint already exists.
		if errors.As(err, &pgErr) && pgErr.Code == "42710" {
			return nil
		}
		return fmt.Errorf("failed to add constraint: %w", err)
	}
	return nil
}

// ResetAppTables truncates marketplace tables for a fresh start.
func (db *DB) ResetAppTables(ctx context.Context) error {
	if db.bunDB == nil {
		return fmt.Errorf("bun DB not initialized")
	}

	candidates := []string{
		"feedback",
		"transactions",
		"bids",
		"listing_watches",
		"listings",
		"categories",
		"user_accounts",
	}

	rows, err := db.pool.Query(ctx, `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'`)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	names, err := scanTableNames(rows)
	if err != nil {
		return err
	}

	present := map[string]bool{}
	for _, name := range names {
		present[name] = true
	}

	var toTruncate []string
	for _, t := range candidates {
		if present[t] {
			toTruncate = append(toTruncate, t)
		}
	}

	if len(toTruncate) == 0 {
		slog.Warn("No marketplace tables found to reset")
		return nil
	}

	stmt := "TRUNCATE TABLE " + joinIdentifiers(toTruncate) + " RESTART IDENTITY CASCADE;"
	if _, err := db.ExecWithLog(ctx, stmt); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	slog.Info("Marketplace tables truncated", "tables", toTruncate)
	return nil
}

// scanTableNames drains a single-column name result set. A scan or
// iteration failure surfaces as an error rather than a shorter list.
func scanTableNames(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return names, nil
}

func joinIdentifiers(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", n)
	}
	return out
}
