// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fakedb holds types to fake an in-memory, read-only DB.
//
// Queries are answered from a set of tables keyed by the query text.
package fakedb // import "github.com/go-lpc/hyperon/internal/fakedb"

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
)

// Tables maps a query to the rows it returns.
type Tables map[string]Rows

var db struct {
	mu   sync.Mutex
	tbls Tables
}

// Run runs f while queries are answered from tbls.
func Run(ctx context.Context, tbls Tables, f func(ctx context.Context) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.tbls = tbls
	defer func() { db.tbls = nil }()

	return f(ctx)
}

func lookup(query string) (*Rows, error) {
	rows, ok := db.tbls[query]
	if !ok {
		return nil, fmt.Errorf("fakedb: unknown query %q", query)
	}
	return &Rows{Names: rows.Names, Values: rows.Values}, nil
}

func init() {
	sql.Register("fakedb", &Driver{})
}

// Driver is the fake DB driver, registered as "fakedb".
type Driver struct{}

// Open returns a new connection to the database.
func (drv *Driver) Open(name string) (driver.Conn, error) {
	return &Conn{}, nil
}

// Conn is a connection to the fake DB.
type Conn struct{}

// Prepare returns a prepared statement, bound to this connection.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return &Stmt{query: query}, nil
}

// Close is a no-op.
func (c *Conn) Close() error {
	return nil
}

// Begin is not supported: the fake DB is read-only.
func (c *Conn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("fakedb: transactions not supported")
}

// Stmt is a prepared query.
type Stmt struct {
	query string
}

// Close is a no-op.
func (stmt *Stmt) Close() error {
	return nil
}

// NumInput returns -1: arguments are not checked.
func (stmt *Stmt) NumInput() int {
	return -1
}

// Exec is not supported: the fake DB is read-only.
func (stmt *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, fmt.Errorf("fakedb: exec not supported")
}

// Query returns the rows registered for the statement's query.
func (stmt *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return lookup(stmt.query)
}

// QueryContext returns the rows registered for the statement's query.
func (stmt *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lookup(stmt.query)
}

// Rows is a table of values.
type Rows struct {
	Names  []string
	Values [][]driver.Value
}

// Columns returns the names of the columns.
func (rows *Rows) Columns() []string {
	return rows.Names
}

// Close closes the rows iterator.
func (rows *Rows) Close() error {
	return nil
}

// Next populates dest with the next row, or returns io.EOF.
func (rows *Rows) Next(dest []driver.Value) error {
	if len(rows.Values) == 0 {
		return io.EOF
	}
	copy(dest, rows.Values[0])
	rows.Values = rows.Values[1:]
	return nil
}

var (
	_ driver.Driver           = (*Driver)(nil)
	_ driver.Conn             = (*Conn)(nil)
	_ driver.Stmt             = (*Stmt)(nil)
	_ driver.StmtQueryContext = (*Stmt)(nil)
	_ driver.Rows             = (*Rows)(nil)
)
