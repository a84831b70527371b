// Package ident derives C identifiers from image file paths.
package ident

import (
	"errors"

	"github.com/sollie/png2c/internal/text"
)

// Extensions are tried in this order; the first trailing match is removed.
var Extensions = []string{".png", ".jpg"}

var ErrEmpty = errors.New("ident: path yields an empty identifier")

// Names are the symbols emitted into a generated header.
type Names struct {
	Guard  string
	Width  string
	Height string
	Array  string
}

func NamesFor(id string) Names {
	return Names{
		Guard:  text.Format("%s_H_", id),
		Width:  text.Format("%s_WIDTH", id),
		Height: text.Format("%s_HEIGHT", id),
		Array:  id,
	}
}

// Basename returns the last '/'-separated segment of path.
func Basename(path string) string {
	if text.FindIndex(path, "/") == text.NotFound {
		return path
	}
	segments := text.Split(path, '/')
	return segments[len(segments)-1]
}

// Stem strips one known extension from the end of base. Unknown
// extensions are left in place.
func Stem(base string) string {
	for _, ext := range Extensions {
		n := text.Length(base) - text.Length(ext)
		if n < 0 {
			continue
		}
		if text.IsEqual(text.Subtext(base, n, text.Length(ext)), ext) {
			return text.Subtext(base, 0, n)
		}
	}
	return base
}

// Derive maps a file path to an upper-case identifier:
// "assets/logo.png" becomes "LOGO". The result is never longer than the
// basename. Characters that are not valid in C identifiers pass through;
// see Sanitize.
func Derive(path string) (string, error) {
	id := text.ToUpper(Stem(Basename(path)))
	if id == "" {
		return "", ErrEmpty
	}
	return id, nil
}

// Sanitize rewrites id into a valid C identifier. Bytes outside
// [A-Za-z0-9_] become '_' and a leading digit gets a '_' prefix.
func Sanitize(id string) string {
	b := []byte(id)
	for i, c := range b {
		if !isIdentByte(c) {
			b[i] = '_'
		}
	}
	out := string(b)
	if out != "" && '0' <= out[0] && out[0] <= '9' {
		out, _ = text.Insert(out, "_", 0)
	}
	return out
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
