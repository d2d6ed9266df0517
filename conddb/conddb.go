// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package conddb holds types to describe the conditions database of the
// detector geometry: the names of detector systems and the kinds of hit
// collections.
package conddb // import "github.com/go-lpc/hyperon/conddb"

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/go-lpc/hyperon/accept"
	"github.com/go-lpc/hyperon/cellid"
)

var (
	host = "localhost:3306"
	usr  = "username"
	pwd  = "s3cr3t"

	drvName = "mysql"
)

const timeout = 5 * time.Second

// DB exposes convenience methods to easily retrieve conditions data
// from the geometry database.
type DB struct {
	db   *sqlx.DB
	name string // name of the geometry database
}

// Open opens a connection to the geometry database dbname.
func Open(dbname string) (*DB, error) {
	db, err := sqlx.Open(drvName, dsn(dbname))
	if err != nil {
		return nil, fmt.Errorf("conddb: could not open %q db: %w", dbname, err)
	}

	err = ping(db, dbname)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db, name: dbname}, nil
}

func dsn(db string) string {
	cfg := mysql.NewConfig()
	cfg.User = usr
	cfg.Passwd = pwd
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = db
	return cfg.FormatDSN()
}

func ping(db *sqlx.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("conddb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

// Name returns the name of the database.
func (db *DB) Name() string { return db.name }

func (db *DB) Close() error {
	return db.db.Close()
}

// System is a detector system, as encoded in the cell IDs of its hits.
type System struct {
	ID   uint8  `db:"id"`
	Name string `db:"name"`
}

// Systems returns the detector systems, sorted by ID.
func (db *DB) Systems(ctx context.Context) ([]System, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out []System
	rows, err := db.db.QueryxContext(ctx, "SELECT id, name FROM systems ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("conddb: could not query systems: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sys System
		err = rows.StructScan(&sys)
		if err != nil {
			return nil, fmt.Errorf("conddb: could not scan system %d: %w", len(out), err)
		}
		out = append(out, sys)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("conddb: could not scan db for systems: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("conddb: context error while retrieving systems: %w", err)
	}

	return out, nil
}

// Dict returns the dictionary of detector system names.
func (db *DB) Dict(ctx context.Context) (*cellid.Dict, error) {
	sys, err := db.Systems(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint8]string, len(sys))
	for _, s := range sys {
		names[s.ID] = s.Name
	}
	return cellid.NewDict(names), nil
}

// Collection is a hit collection of the detector.
type Collection struct {
	Name string `db:"name"`
	Kind string `db:"kind"` // "tracker" or "calorimeter"
}

// Detectors returns the hit collections scanned by the acceptance
// analyses, as stored in the detectors table.
func (db *DB) Detectors(ctx context.Context) ([]accept.Detector, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var colls []Collection
	err := db.db.SelectContext(ctx, &colls, "SELECT name, kind FROM detectors ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("conddb: could not query detectors: %w", err)
	}

	out := make([]accept.Detector, len(colls))
	for i, c := range colls {
		switch c.Kind {
		case "tracker":
			out[i] = accept.Detector{Name: c.Name, Kind: accept.Tracker}
		case "calorimeter":
			out[i] = accept.Detector{Name: c.Name, Kind: accept.Calorimeter}
		default:
			return nil, fmt.Errorf("conddb: invalid kind %q for collection %q", c.Kind, c.Name)
		}
	}

	return out, nil
}
