package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConnector serves one canned result set for every query, which is
// enough to exercise row scanning without a live database.
type stubConnector struct {
	columns []string
	rows    [][]driver.Value
}

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) {
	return &stubConn{columns: c.columns, rows: c.rows}, nil
}

func (c *stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through sql.OpenDB")
}

type stubConn struct {
	columns []string
	rows    [][]driver.Value
}

var _ driver.QueryerContext = (*stubConn)(nil)

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func (c *stubConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return &stubRows{columns: c.columns, rows: c.rows}, nil
}

type stubRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

func TestDefenseScanSurvivesDeletedCreator(t *testing.T) {
	// Deleting the creating account nulls creator_id; catalog reads must
	// keep working.
	db := sql.OpenDB(&stubConnector{
		columns: []string{"id", "name", "slug", "monsters", "creator_id", "created_at"},
		rows: [][]driver.Value{{
			int64(4),
			"Lushen - Lushen - Verdehile",
			"lushen-lushen-verdehile",
			[]byte(`[{"id":101,"name":"Lushen"},{"id":101,"name":"Lushen"},{"id":205,"name":"Verdehile"}]`),
			nil,
			time.Now(),
		}},
	})
	defer db.Close()

	repo := NewPostgresDefenseRepository(db)

	defense, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, defense.CreatorID)
	assert.Equal(t, "lushen-lushen-verdehile", defense.Slug)
	require.Len(t, defense.Monsters, 3)

	defenses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, defenses, 1)
	assert.Nil(t, defenses[0].CreatorID)
}

func TestDefenseScanKeepsLiveCreator(t *testing.T) {
	db := sql.OpenDB(&stubConnector{
		columns: []string{"id", "name", "slug", "monsters", "creator_id", "created_at"},
		rows: [][]driver.Value{{
			int64(1), "n", "n", []byte(`[]`), int64(9), time.Now(),
		}},
	})
	defer db.Close()

	defense, err := NewPostgresDefenseRepository(db).GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, defense.CreatorID)
	assert.Equal(t, 9, *defense.CreatorID)
}

func TestCounterScanSurvivesDeletedCreator(t *testing.T) {
	db := sql.OpenDB(&stubConnector{
		columns: []string{"id", "name", "defense_team_id", "monsters", "description", "creator_id", "created_at"},
		rows: [][]driver.Value{{
			int64(7),
			"Tiana - Ganymede - Wind Homie",
			int64(4),
			[]byte(`[{"id":301,"name":"Tiana"},{"id":302,"name":"Ganymede"},{"id":303,"name":"Wind Homie"}]`),
			"cleave setup",
			nil,
			time.Now(),
		}},
	})
	defer db.Close()

	repo := NewPostgresCounterRepository(db)

	counters, err := repo.ListByDefenseID(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Nil(t, counters[0].CreatorID)
	assert.Equal(t, "cleave setup", counters[0].Description)
}
