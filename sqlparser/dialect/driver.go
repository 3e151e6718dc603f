package dialect

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
	"github.com/pkg/errors"
)

// ForDriver maps a database/sql driver to the dialect of the database
// it talks to.
func ForDriver(drv driver.Driver) (*Dialect, error) {
	switch drv.(type) {
	case *mssql.Driver:
		return Lookup(SQLServer.Name)
	case *stdlib.Driver:
		return Lookup(PostgreSQL.Name)
	default:
		return nil, fmt.Errorf("no dialect for driver %T", drv)
	}
}

// ForDSN picks the dialect from a connection string. SQL Server and
// PostgreSQL connection strings are validated with their drivers' parsers,
// so a malformed DSN is reported here rather than at connect time.
func ForDSN(dsn string) (*Dialect, error) {
	scheme, _, found := strings.Cut(dsn, "://")
	if !found {
		return nil, errors.New("expected URI-style dsn, e.g. sqlserver://, postgres://, mysql://")
	}
	switch strings.ToLower(scheme) {
	case "sqlserver":
		if _, err := msdsn.Parse(dsn); err != nil {
			return nil, errors.Wrap(err, "invalid sqlserver dsn")
		}
		return Lookup(SQLServer.Name)
	case "azuresql":
		return Lookup(SQLServer.Name)
	case "postgres", "postgresql":
		if _, err := pgx.ParseConfig(dsn); err != nil {
			return nil, errors.Wrap(err, "invalid postgres dsn")
		}
		return Lookup(PostgreSQL.Name)
	default:
		return Lookup(scheme)
	}
}
