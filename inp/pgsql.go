// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// numericTypes holds the PostgreSQL types accepted as soil attributes
var numericTypes = []string{"double precision", "real", "numeric", "integer", "bigint", "smallint"}

// PgSource reads soil records from a PostgreSQL table; one row per record.
// NULL values are treated as missing.
type PgSource struct {
	DB    *sqlx.DB // connection
	Table string   // table name; may be qualified by schema; e.g. public.soils
	IdCol string   // identifier column; cast to text

	cols []string // numeric columns
}

// OpenPg connects to a PostgreSQL server and discovers the numeric columns of table
func OpenPg(ctx context.Context, dsn, table, idcol string) (o *PgSource, err error) {
	if table == "" {
		return nil, chk.Err("PostgreSQL table name is missing")
	}
	if idcol == "" {
		idcol = soil.FieldId
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, chk.Err("cannot open PostgreSQL connection: %v", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pctx); err != nil {
		db.Close()
		return nil, chk.Err("cannot ping PostgreSQL server: %v", err)
	}
	o = &PgSource{DB: db, Table: table, IdCol: idcol}
	query, args := columnsQuery(table)
	if err = db.SelectContext(ctx, &o.cols, query, args...); err != nil {
		db.Close()
		return nil, chk.Err("cannot read columns of table %q: %v", table, err)
	}
	if len(o.cols) == 0 {
		db.Close()
		return nil, chk.Err("table %q has no numeric columns", table)
	}
	if io.Verbose {
		io.Pf("table %q: columns = %v\n", table, o.cols)
	}
	return
}

// Close closes the connection
func (o *PgSource) Close() error { return o.DB.Close() }

// Fields returns the numeric columns
func (o *PgSource) Fields() []string { return o.cols }

// Records reads all rows ordered by identifier
func (o *PgSource) Records(ctx context.Context) (res []soil.Values, err error) {
	rows, err := o.DB.QueryxContext(ctx, selectQuery(o.Table, o.IdCol, o.cols))
	if err != nil {
		return nil, chk.Err("cannot query table %q: %v", o.Table, err)
	}
	defer rows.Close()
	for rows.Next() {
		m := make(map[string]interface{})
		if err = rows.MapScan(m); err != nil {
			return nil, err
		}
		v, e := rowValues(m, o.IdCol)
		if e != nil {
			return nil, chk.Err("table %q, row %d: %v", o.Table, len(res), e)
		}
		res = append(res, v)
	}
	return res, rows.Err()
}

// splitTable splits a table name into schema and name
func splitTable(table string) (schema, name string) {
	if i := strings.Index(table, "."); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}

// quoteTable quotes a table name that may be qualified by schema
func quoteTable(table string) string {
	schema, name := splitTable(table)
	if schema == "" {
		return pq.QuoteIdentifier(name)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(name)
}

// columnsQuery returns the query listing the numeric columns of table
func columnsQuery(table string) (query string, args []interface{}) {
	schema, name := splitTable(table)
	query = "SELECT column_name FROM information_schema.columns WHERE table_name = $1 AND data_type = ANY($2)"
	args = []interface{}{name, pq.Array(numericTypes)}
	if schema != "" {
		query += " AND table_schema = $3"
		args = append(args, schema)
	}
	query += " ORDER BY ordinal_position"
	return
}

// selectQuery returns the query reading all records
func selectQuery(table, idcol string, cols []string) string {
	id := pq.QuoteIdentifier(idcol)
	l := "SELECT " + id + "::text AS " + id
	for _, c := range cols {
		if c == idcol {
			continue
		}
		l += ", " + pq.QuoteIdentifier(c)
	}
	return l + " FROM " + quoteTable(table) + " ORDER BY " + id
}

// rowValues converts a scanned row; NULL values are skipped
func rowValues(m map[string]interface{}, idcol string) (v soil.Values, err error) {
	v.V = make(map[string]float64, len(m))
	for key, x := range m {
		if x == nil {
			continue
		}
		if key == idcol {
			switch id := x.(type) {
			case string:
				v.Id = id
			case []byte:
				v.Id = string(id)
			default:
				v.Id = io.Sf("%v", id)
			}
			continue
		}
		var f float64
		switch val := x.(type) {
		case float64:
			f = val
		case float32:
			f = float64(val)
		case int64:
			f = float64(val)
		case []byte:
			f, err = strconv.ParseFloat(string(val), 64)
			if err != nil {
				return v, chk.Err("column %q: %q is not a number", key, val)
			}
		default:
			return v, chk.Err("column %q: value of type %T is not supported", key, x)
		}
		v.V[key] = f
	}
	return
}
