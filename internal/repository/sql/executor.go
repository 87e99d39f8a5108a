package sql

import (
	"context"
	"database/sql"
)

// dbExecutor is an interface that represents *sql.DB, *sql.Conn or *sql.Tx.
// ProductStore hands each operation the *sql.Conn reserved by withConn.
type dbExecutor interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
