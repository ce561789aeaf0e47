package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the movies table when it does not exist yet.
// One row per movie: the whole aggregate lives in the doc JSON column,
// movie_id is the unique business key and version backs conditional
// saves. There is no further migration tooling.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS movies (
	    id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	    movie_id   BIGINT          NOT NULL,
	    doc        JSON            NOT NULL,
	    version    BIGINT          NOT NULL DEFAULT 1,
	    created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
	    updated_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP
	                               ON UPDATE CURRENT_TIMESTAMP,
	    PRIMARY KEY (id),
	    UNIQUE KEY uq_movies_movie_id (movie_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure movies table: %w", err)
	}
	return nil
}
