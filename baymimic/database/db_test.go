package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type stubRows struct {
	names   []string
	idx     int
	iterErr error
	scanErr error
	closed  bool
}

func (r *stubRows) Close()                                       { r.closed = true }
func (r *stubRows) Err() error                                   { return r.iterErr }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx < len(r.names) {
		r.idx++
		return true
	}
	return false
}

func (r *stubRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	*(dest[0].(*string)) = r.names[r.idx-1]
	return nil
}

func TestScanTableNames(t *testing.T) {
	rows := &stubRows{names: []string{"listings", "bids"}}

	names, err := scanTableNames(rows)
	assert.NoError(t, err)
	assert.Equal(t, []string{"listings", "bids"}, names)
	assert.True(t, rows.closed)
}

func TestScanTableNamesIterationError(t *testing.T) {
	// A connection dropping mid-iteration surfaces via Err(), not Next().
	rows := &stubRows{names: []string{"listings"}, iterErr: errors.New("connection reset")}

	names, err := scanTableNames(rows)
	assert.Nil(t, names)
	assert.ErrorContains(t, err, "connection reset")
	assert.True(t, rows.closed)
}

func TestScanTableNamesScanError(t *testing.T) {
	rows := &stubRows{names: []string{"listings"}, scanErr: errors.New("bad column")}

	names, err := scanTableNames(rows)
	assert.Nil(t, names)
	assert.ErrorContains(t, err, "bad column")
	assert.True(t, rows.closed)
}

func TestJoinIdentifiers(t *testing.T) {
	assert.Equal(t, `"feedback", "bids"`, joinIdentifiers([]string{"feedback", "bids"}))
	assert.Equal(t, "", joinIdentifiers(nil))
}
