package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// ErrStoreUnavailable marks connectivity-class failures. Callers must
// never fold these into a not-found outcome: a missing row is a normal
// answer, an unreachable store is a transient one.
var ErrStoreUnavailable = errors.New("data store unavailable")

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, letting
// repository methods participate in caller-owned transactions.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// classifyError tags driver- and network-level failures with
// ErrStoreUnavailable and passes every other error through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" { // connection exception
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
