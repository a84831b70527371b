// Package cheader renders a decoded picture as a C header.
package cheader

import (
	"bufio"
	"io"
	"strconv"

	"github.com/sollie/png2c/internal/ident"
	"github.com/sollie/png2c/internal/picture"
	"github.com/sollie/png2c/internal/text"
)

// Write emits the header for pic under names. Every pixel literal is
// followed by ", ", so the array ends with a trailing comma.
//
//	#ifndef LOGO_H_
//	#define LOGO_H_
//	size_t LOGO_WIDTH = 2;
//	size_t LOGO_HEIGHT = 1;
//	uint32_t LOGO[] = {0xff0000ff, 0xffff0000, };
//	#endif // LOGO_H_
func Write(w io.Writer, names ident.Names, pic *picture.Picture) error {
	bw := bufio.NewWriter(w)

	lines := []string{
		text.Format("#ifndef %s", names.Guard),
		text.Format("#define %s", names.Guard),
		text.Format("size_t %s = %d;", names.Width, pic.Width),
		text.Format("size_t %s = %d;", names.Height, pic.Height),
		"",
	}
	if _, err := io.WriteString(bw, text.Join(lines, "\n")); err != nil {
		return err
	}

	if _, err := io.WriteString(bw, text.Format("uint32_t %s[] = {", names.Array)); err != nil {
		return err
	}
	buf := make([]byte, 0, 16)
	for _, p := range pic.Pixels {
		buf = append(buf[:0], "0x"...)
		buf = strconv.AppendUint(buf, uint64(p), 16)
		buf = append(buf, ", "...)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(bw, "};\n"); err != nil {
		return err
	}

	if _, err := io.WriteString(bw, text.Format("#endif // %s\n", names.Guard)); err != nil {
		return err
	}
	return bw.Flush()
}
