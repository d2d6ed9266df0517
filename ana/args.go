// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"flag"
)

// ParseArgs parses the command-line arguments with fset and returns the
// positional arguments. Unlike fset.Parse, options may follow positional
// arguments: "prog a.slcio -n 10 b.slcio" is valid.
// The "--" terminator ends the parsing of options.
func ParseArgs(fset *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		err := fset.Parse(args)
		if err != nil {
			return nil, err
		}
		rest := fset.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		if n := len(args) - len(rest); n > 0 && args[n-1] == "--" {
			return append(pos, rest...), nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}
