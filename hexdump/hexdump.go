// Package hexdump renders byte buffers as hex and ASCII rows with an
// address column, used by the CLI to show memory around a scan match.
package hexdump

import (
	"fmt"
	"strings"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

// Options controls Dump output.
type Options struct {
	// BytesPerLine defines the number of bytes to display per line
	BytesPerLine int

	// Color colorizes the address column
	Color bool
}

// Dump renders data as hex and ASCII rows, labelling the first byte with
// the given display address.
func Dump(data []byte, addr uint64, opts *Options) string {
	o := Options{BytesPerLine: 16}
	if opts != nil {
		o = *opts
		if o.BytesPerLine <= 0 {
			o.BytesPerLine = 16
		}
	}

	var sb strings.Builder
	for i := 0; i < len(data); i += o.BytesPerLine {
		end := i + o.BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		line := data[i:end]

		addrCol := fmt.Sprintf("%08X", addr+uint64(i))
		if o.Color {
			addrCol = coloransi.Color(coloransi.Cyan, coloransi.Black, addrCol)
		}
		sb.WriteString(addrCol)
		sb.WriteString("  ")

		for j := 0; j < o.BytesPerLine; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if j == o.BytesPerLine/2 {
				sb.WriteByte(' ')
			}
			if j < len(line) {
				fmt.Fprintf(&sb, "%02X", line[j])
			} else {
				sb.WriteString("  ")
			}
		}

		sb.WriteString("  |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
