// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified.
var Default = Build

// tools are the commands installed under ./bin.
var tools = []string{
	"csv-acceptance-npi0",
	"csv-acceptance-ppim",
	"csv-convert",
	"csv-mc-dis",
	"csv-mcpart-lambda",
	"csv-trk-hits",
	"lambda-plot",
	"lcio-dump",
	"lcio-gen",
	"lcio-skim",
	"conddb-dump",
}

// Build builds all the commands into ./bin.
func Build() error {
	mg.Deps(Vet)
	for _, name := range tools {
		fmt.Printf("building %s...\n", name)
		err := sh.RunV("go", "build", "-o", filepath.Join("bin", name), "./cmd/"+name)
		if err != nil {
			return fmt.Errorf("could not build %s: %w", name, err)
		}
	}
	fmt.Println("compilation finished")
	return nil
}

// Test runs the tests of all the packages.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all the packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes the built commands.
func Clean() error {
	return os.RemoveAll("bin")
}
