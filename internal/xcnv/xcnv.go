// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcnv provides tools to generate, skim and rewrite LCIO event files.
package xcnv // import "github.com/go-lpc/hyperon/internal/xcnv"
