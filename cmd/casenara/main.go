// Package main provides the casenara command line tool.
//
// casenara exposes the console's shared helpers for scripting and debugging:
//   - chosung: print the initial consonants of Hangul text
//   - filter: search a names file the way the console's lookup fields do
//   - clone: deep copy a YAML document and report the tier that succeeded
//   - date: normalize a date to YYYY-MM-DD, or print today
//   - guard: show where the navigation guard sends a path
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
