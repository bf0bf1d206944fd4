package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig_DatabaseURL(t *testing.T) {
	cfg := PostgresConfig{
		Host: "db", Port: 5432, User: "share", Password: "p@ss word",
		DBName: "shareit", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://share:p%40ss%20word@db:5432/shareit?sslmode=disable", cfg.DatabaseURL())
	assert.Equal(t, "host=db port=5432 user=share password=p@ss word dbname=shareit sslmode=disable", cfg.DSN())
}

func TestPgErrorClassification(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "bookings_item_id_fkey"})
	uq := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(uq))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}
