// Package schema describes every table owned by voltid as plain data.
//
// Descriptors are rendered into idempotent DDL for integration tests and the
// dev bootstrap flag. Production databases are provisioned out of band.
package schema

import (
	"fmt"
	"strings"
)

type Column struct {
	Name       string
	Type       string
	Nullable   bool
	Default    string
	PrimaryKey bool
	References string // "table(column) ON DELETE ..." when set
}

type Index struct {
	Name    string
	Columns []string
	Unique  bool
	Where   string
}

// Table is the descriptor for one entity.
type Table struct {
	Name        string
	Columns     []Column
	Indexes     []Index
	Constraints []string
}

// Column returns the column descriptor with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames lists column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// CreateStatement renders CREATE TABLE IF NOT EXISTS.
func (t Table) CreateStatement() string {
	lines := make([]string, 0, len(t.Columns)+len(t.Constraints))
	for _, c := range t.Columns {
		var b strings.Builder
		b.WriteString(c.Name)
		b.WriteString(" ")
		b.WriteString(c.Type)
		if c.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
		} else if !c.Nullable {
			b.WriteString(" NOT NULL")
		}
		if c.Default != "" {
			b.WriteString(" DEFAULT ")
			b.WriteString(c.Default)
		}
		if c.References != "" {
			b.WriteString(" REFERENCES ")
			b.WriteString(c.References)
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, t.Constraints...)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(lines, ",\n\t"))
}

// IndexStatements renders CREATE INDEX IF NOT EXISTS for each index.
func (t Table) IndexStatements() []string {
	out := make([]string, 0, len(t.Indexes))
	for _, idx := range t.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmt := fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique, idx.Name, t.Name, strings.Join(idx.Columns, ", "))
		if idx.Where != "" {
			stmt += " WHERE " + idx.Where
		}
		out = append(out, stmt)
	}
	return out
}

// Tables returns every descriptor in dependency order.
func Tables() []Table {
	return []Table{Tenants, Users, Verifications, UserKYC, PaymentMethods, Outbox}
}

// Statements renders the full DDL for Tables.
func Statements() []string {
	var out []string
	for _, t := range Tables() {
		out = append(out, t.CreateStatement())
		out = append(out, t.IndexStatements()...)
	}
	return out
}

// TableNames lists tables in reverse dependency order, suitable for TRUNCATE.
func TableNames() []string {
	tables := Tables()
	names := make([]string, 0, len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		names = append(names, tables[i].Name)
	}
	return names
}
