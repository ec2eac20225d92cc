package keyset

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	dialectMySQL    = "mysql"
	dialectPostgres = "postgres"
)

// mockDialects lists the dialects every GORM-backed query test runs against.
var mockDialects = []string{dialectMySQL, dialectPostgres}

// newGORMMock opens a gorm connection of the given dialect over sqlmock.
func newGORMMock(t *testing.T, dialect string) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	var dialector gorm.Dialector
	switch dialect {
	case dialectMySQL:
		dialector = mysql.New(mysql.Config{Conn: mockDB, SkipInitializeWithVersion: true})
	case dialectPostgres:
		dialector = postgres.New(postgres.Config{Conn: mockDB})
	default:
		require.FailNow(t, fmt.Sprintf("unknown dialect '%s'", dialect))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return db.Debug(), mock
}
