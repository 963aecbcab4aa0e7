// Package jsonrepair cleans up hand-edited JSON files before they are parsed.
//
// The repair is a heuristic, not a JSON5 parser. It fixes the artifacts bank
// exports are known to carry (a byte order mark, stray literal \t \n \r
// sequences, trailing commas, irregular whitespace) and gives up on anything
// else. Pathological inputs may still fail to parse after repair.
package jsonrepair

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
)

var (
	utf8BOM       = []byte("\xEF\xBB\xBF")
	trailingComma = regexp.MustCompile(`,\s*([\]}])`)
)

// Repair returns a cleaned copy of raw. It never fails; callers find out
// whether the result is usable by parsing it.
//
// Escape sequences are removed wherever they appear, including inside string
// values, so a value holding a real "\n" escape loses it. Trailing commas
// inside string values are removed for the same reason.
func Repair(raw []byte) []byte {
	out := bytes.TrimPrefix(raw, utf8BOM)
	out = stripLiteralEscapes(out)
	out = trailingComma.ReplaceAll(out, []byte("$1"))
	out = collapseWhitespace(out)
	return bytes.TrimSpace(out)
}

// Decode repairs raw and decodes exactly one JSON value from it. Numbers are
// kept as json.Number so callers decide how to coerce them.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(Repair(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// stripLiteralEscapes drops every \t, \n and \r pair whose backslash is not
// itself escaped, i.e. preceded by an even number of backslashes.
func stripLiteralEscapes(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); {
		if in[i] != '\\' {
			out = append(out, in[i])
			i++
			continue
		}

		j := i
		for j < len(in) && in[j] == '\\' {
			j++
		}
		run := j - i
		if run%2 == 1 && j < len(in) && isEscapeLetter(in[j]) {
			out = append(out, in[i:j-1]...)
			i = j + 1
			continue
		}
		out = append(out, in[i:j]...)
		i = j
	}
	return out
}

func isEscapeLetter(c byte) bool {
	return c == 't' || c == 'n' || c == 'r'
}

// collapseWhitespace turns each whitespace run outside string literals into a
// single space. A backslash inside a string always protects the next byte, so
// an escaped quote does not end the literal.
func collapseWhitespace(in []byte) []byte {
	out := make([]byte, 0, len(in))
	inString := false
	for i := 0; i < len(in); i++ {
		c := in[i]
		if inString {
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(in) {
					i++
					out = append(out, in[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case isSpace(c):
			for i+1 < len(in) && isSpace(in[i+1]) {
				i++
			}
			out = append(out, ' ')
		default:
			out = append(out, c)
		}
	}
	return out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
