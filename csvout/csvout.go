// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csvout writes fixed-width comma separated tables.
//
// Fields are never quoted. Every row of a table, header included, has the
// same number of fields: optional entities are written as a run of empty
// fields of the entity's width.
package csvout // import "github.com/go-lpc/hyperon/csvout"

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrWidth is returned when a row does not have the width of the header.
var ErrWidth = errors.New("csvout: invalid row width")

// Template is the ordered list of fields of an entity.
type Template []string

// Header returns the column names of the template, as prefix_field.
func (tmpl Template) Header(prefix string) []string {
	out := make([]string, len(tmpl))
	for i, name := range tmpl {
		out[i] = prefix + "_" + name
	}
	return out
}

// Blank returns the empty fields of an unbound entity.
func (tmpl Template) Blank() []string {
	return make([]string, len(tmpl))
}

// Table is a CSV table with a lazily written, single header line.
type Table struct {
	f   io.Closer
	w   *bufio.Writer
	hdr []string

	done bool // whether the header has been written
	rows int64
}

// Create creates the named file and returns a table writing to it.
func Create(fname string, header []string) (*Table, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("csvout: could not create %q: %w", fname, err)
	}
	tbl := NewTable(f, header)
	tbl.f = f
	return tbl, nil
}

// NewTable returns a table writing to w.
func NewTable(w io.Writer, header []string) *Table {
	return &Table{
		w:   bufio.NewWriter(w),
		hdr: header,
	}
}

// Header returns the column names of the table.
func (tbl *Table) Header() []string {
	return tbl.hdr
}

// Rows returns the number of data rows written so far.
func (tbl *Table) Rows() int64 {
	return tbl.rows
}

// Write writes a row. The header is written before the first row.
func (tbl *Table) Write(row []string) error {
	if len(row) != len(tbl.hdr) {
		return fmt.Errorf("%w: got=%d, want=%d", ErrWidth, len(row), len(tbl.hdr))
	}
	if !tbl.done {
		err := tbl.line(tbl.hdr)
		if err != nil {
			return fmt.Errorf("csvout: could not write header: %w", err)
		}
		tbl.done = true
	}
	err := tbl.line(row)
	if err != nil {
		return fmt.Errorf("csvout: could not write row %d: %w", tbl.rows, err)
	}
	tbl.rows++
	return nil
}

// WriteHeader writes the header, if it was not already written.
// It is only needed for tables that must carry a header even when empty.
func (tbl *Table) WriteHeader() error {
	if tbl.done {
		return nil
	}
	err := tbl.line(tbl.hdr)
	if err != nil {
		return fmt.Errorf("csvout: could not write header: %w", err)
	}
	tbl.done = true
	return nil
}

func (tbl *Table) line(fields []string) error {
	_, err := tbl.w.WriteString(strings.Join(fields, ","))
	if err != nil {
		return err
	}
	return tbl.w.WriteByte('\n')
}

// Flush flushes buffered rows to the underlying writer.
func (tbl *Table) Flush() error {
	return tbl.w.Flush()
}

// Close flushes the table and closes the underlying file, if any.
func (tbl *Table) Close() error {
	err := tbl.w.Flush()
	if err != nil {
		return fmt.Errorf("csvout: could not flush table: %w", err)
	}
	if tbl.f == nil {
		return nil
	}
	f := tbl.f
	tbl.f = nil
	err = f.Close()
	if err != nil {
		return fmt.Errorf("csvout: could not close table: %w", err)
	}
	return nil
}

// Concat concatenates column lists.
func Concat(cols ...[]string) []string {
	n := 0
	for _, c := range cols {
		n += len(c)
	}
	out := make([]string, 0, n)
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}

// F64 formats a float64 in its shortest round-trip form.
func F64(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// F32 formats a float32 in its shortest round-trip form.
func F32(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

// Int formats an integer.
func Int[T ~int | ~int32 | ~int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// Uint formats an unsigned integer.
func Uint[T ~uint8 | ~uint32 | ~uint64](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

// Bool formats a boolean as 0 or 1.
func Bool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
