package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// writeColumns prints two aligned columns. Hangul takes two terminal cells,
// so widths are measured in cells rather than runes.
func writeColumns(w io.Writer, rows [][2]string) error {
	width := 0
	for _, r := range rows {
		width = max(width, uniseg.StringWidth(r[0]))
	}

	for _, r := range rows {
		pad := strings.Repeat(" ", width-uniseg.StringWidth(r[0]))
		if _, err := fmt.Fprintf(w, "%s%s  %s\n", r[0], pad, r[1]); err != nil {
			return err
		}
	}

	return nil
}
