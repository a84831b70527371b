// Package text holds the small byte-oriented string helpers used to turn
// file paths into header identifiers. Strings are treated as opaque bytes:
// nothing here decodes UTF-8, and case folding only touches ASCII letters.
//
// Every function returns a fresh value owned by the caller.
package text

import (
	"errors"
	"fmt"
	"strings"
)

// NotFound is returned by FindIndex when the needle does not occur.
const NotFound = -1

var (
	ErrEmptyTarget = errors.New("text: empty replace target")
	ErrCapacity    = errors.New("text: segment limit exceeded")
	ErrPosition    = errors.New("text: position out of range")
)

// Length returns the number of bytes in s.
func Length(s string) int {
	return len(s)
}

func IsEqual(a, b string) bool {
	return a == b
}

// Subtext returns at most length bytes of s starting at position. A
// position past the end yields the empty string.
func Subtext(s string, position, length int) string {
	if position < 0 {
		position = 0
	}
	if position >= len(s) || length <= 0 {
		return ""
	}
	if length > len(s)-position {
		length = len(s) - position
	}
	return s[position : position+length]
}

// Split cuts s at every delimiter byte. The result always has one more
// element than there are delimiters in s.
func Split(s string, delimiter byte) []string {
	parts := make([]string, 0, countByte(s, delimiter)+1)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == delimiter {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// SplitN is Split with a hard bound on the number of segments. It fails
// with ErrCapacity instead of truncating.
func SplitN(s string, delimiter byte, limit int) ([]string, error) {
	if n := countByte(s, delimiter) + 1; n > limit {
		return nil, fmt.Errorf("%w: %d segments, limit %d", ErrCapacity, n, limit)
	}
	return Split(s, delimiter), nil
}

func countByte(s string, c byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			n++
		}
	}
	return n
}

// Replace substitutes every non-overlapping occurrence of target,
// leftmost first. The search resumes after each replaced region, so the
// replacement text is never rescanned.
func Replace(s, target, replacement string) (string, error) {
	if target == "" {
		return "", ErrEmptyTarget
	}

	var b strings.Builder
	rest := s
	for {
		i := FindIndex(rest, target)
		if i == NotFound {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(replacement)
		rest = rest[i+len(target):]
	}
	b.WriteString(rest)
	return b.String(), nil
}

// Insert places insert into s before the byte at position.
func Insert(s, insert string, position int) (string, error) {
	if position < 0 || position > len(s) {
		return "", fmt.Errorf("%w: %d not in [0,%d]", ErrPosition, position, len(s))
	}
	return s[:position] + insert + s[position:], nil
}

// FindIndex returns the byte offset of the first needle in s, or NotFound.
func FindIndex(s, needle string) int {
	return strings.Index(s, needle)
}

func ToUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func ToLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ToPascal turns snake_case into PascalCase: the first byte and every
// byte following an underscore are upper-cased and the underscores dropped.
func ToPascal(s string) string {
	b := make([]byte, 0, len(s))
	upper := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		b = append(b, c)
	}
	return string(b)
}

// ToInteger reads an optional sign followed by decimal digits and stops
// at the first non-digit. Input without digits yields 0.
func ToInteger(s string) int {
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	value := 0
	for i := 0; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		value = value*10 + int(s[i]-'0')
	}
	return value * sign
}

// Join concatenates parts with delimiter between consecutive elements.
func Join(parts []string, delimiter string) string {
	n := len(delimiter) * max(len(parts)-1, 0)
	for _, p := range parts {
		n += len(p)
	}

	var b strings.Builder
	b.Grow(n)
	for i, p := range parts {
		if i > 0 {
			b.WriteString(delimiter)
		}
		b.WriteString(p)
	}
	return b.String()
}

// Format is fmt.Sprintf under the package's naming.
func Format(template string, args ...any) string {
	return fmt.Sprintf(template, args...)
}
