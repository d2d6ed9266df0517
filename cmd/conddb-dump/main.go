// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command conddb-dump displays the detector systems and the hit collections
// stored in the geometry conditions database.
package main // import "github.com/go-lpc/hyperon/cmd/conddb-dump"

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-lpc/hyperon/conddb"
)

func main() {
	log.SetPrefix("conddb-dump: ")
	log.SetFlags(0)

	var (
		dbname = flag.String("db", "epic_geo", "name of the geometry database")
	)

	flag.Parse()

	log.Printf("db: %q", *dbname)

	db, err := conddb.Open(*dbname)
	if err != nil {
		log.Fatalf("could not open geometry db: %+v", err)
	}
	defer db.Close()

	err = dump(os.Stdout, db)
	if err != nil {
		log.Fatalf("could not dump db: %+v", err)
	}
}

func dump(w io.Writer, db *conddb.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	systems, err := db.Systems(ctx)
	if err != nil {
		return fmt.Errorf("could not get detector systems: %w", err)
	}
	fmt.Fprintf(w, "systems: %d\n", len(systems))
	for _, sys := range systems {
		fmt.Fprintf(w, ">>> id=%03d name=%q\n", sys.ID, sys.Name)
	}

	dets, err := db.Detectors(ctx)
	if err != nil {
		return fmt.Errorf("could not get hit collections: %w", err)
	}
	fmt.Fprintf(w, "collections: %d\n", len(dets))
	for _, det := range dets {
		fmt.Fprintf(w, ">>> %-12s %s\n", det.Kind, det.Name)
	}

	return nil
}
