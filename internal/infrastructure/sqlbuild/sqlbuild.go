// Package sqlbuild arma con goqu las consultas de lectura comunes a los dos almacenes (PostgreSQL y SQLite):
// máximo ID, muestreo aleatorio y conteos. Las escrituras quedan en cada adaptador.
package sqlbuild

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registra el dialecto
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // registra el dialecto
)

// Dialectos soportados.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Columnas clave de cada tabla.
const (
	ColCustomerID  = "customer_id"
	ColProductID   = "product_id"
	ColOrderID     = "order_id"
	ColOrderItemID = "order_item_id"
	ColPaymentID   = "payment_id"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
)

// Query sentencia preparada lista para ejecutar.
type Query struct {
	SQL  string
	Args []any
}

// Builder arma sentencias para un dialecto concreto.
type Builder struct {
	dialect goqu.DialectWrapper
}

// New construye el builder; dialect debe ser DialectPostgres o DialectSQLite.
func New(dialect string) (Builder, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return Builder{dialect: goqu.Dialect(dialect)}, nil
	}
	return Builder{}, fmt.Errorf("sqlbuild: dialecto no soportado %q", dialect)
}

// MaxID SELECT COALESCE(MAX(idCol), 0) FROM table.
func (b Builder) MaxID(table, idCol string) (Query, error) {
	ds := b.dialect.From(table).
		Prepared(true).
		Select(goqu.COALESCE(goqu.MAX(idCol), 0))
	return toQuery(ds)
}

// Sample hasta n filas uniformes sin reemplazo (ORDER BY RANDOM() LIMIT n). Si la tabla tiene menos filas
// se devuelven todas. where es opcional. goqu omite LIMIT 0: el llamador descarta n <= 0 antes.
func (b Builder) Sample(table string, columns []string, n int, where goqu.Ex) (Query, error) {
	if n < 0 {
		n = 0
	}
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}
	ds := b.dialect.From(table).
		Prepared(true).
		Select(cols...).
		Order(goqu.L("RANDOM()").Asc()).
		Limit(uint(n))
	if len(where) > 0 {
		ds = ds.Where(where)
	}
	return toQuery(ds)
}

// CountRows SELECT COUNT(*) FROM table.
func (b Builder) CountRows(table string) (Query, error) {
	return toQuery(b.dialect.From(table).Prepared(true).Select(goqu.COUNT(goqu.Star())))
}

// CountUpdated cuenta filas con updated_at > created_at.
func (b Builder) CountUpdated(table string) (Query, error) {
	ds := b.dialect.From(table).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(ColUpdatedAt).Gt(goqu.C(ColCreatedAt)))
	return toQuery(ds)
}

// GetByID selecciona columns de la fila con idCol = id.
func (b Builder) GetByID(table string, columns []string, idCol string, id int64) (Query, error) {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}
	ds := b.dialect.From(table).
		Prepared(true).
		Select(cols...).
		Where(goqu.C(idCol).Eq(id))
	return toQuery(ds)
}

func toQuery(ds *goqu.SelectDataset) (Query, error) {
	sql, args, err := ds.ToSQL()
	if err != nil {
		return Query{}, fmt.Errorf("sqlbuild: %w", err)
	}
	return Query{SQL: sql, Args: args}, nil
}
