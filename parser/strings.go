package parser

import (
	"errors"
	"io"
	"strings"
	"unicode/utf16"
)

// internTable holds the handful of strings that recur constantly in typed
// JSON documents (meta keys and common field names); returning the shared
// copy avoids a fresh allocation per occurrence.
var internTable = map[string]string{
	"":        "",
	"@type":   "@type",
	"@id":     "@id",
	"@ref":    "@ref",
	"@items":  "@items",
	"@keys":   "@keys",
	"id":      "id",
	"name":    "name",
	"type":    "type",
	"value":   "value",
	"class":   "class",
	"key":     "key",
	"values":  "values",
	"@t":      "@t",
	"@i":      "@i",
	"@r":      "@r",
	"@k":      "@k",
	"@e":      "@e",
}

func intern(s string) string {
	if c, ok := internTable[s]; ok {
		return c
	}

	return s
}

// parseString reads a quoted string value, consuming its own opening quote
// via the caller (parseValue has already consumed it).
func (p *Parser) parseString() (string, error) {
	s, err := p.readQuotedString()
	if err != nil {
		return "", err
	}

	return intern(s), nil
}

// readQuotedString reads the body of a double-quoted string, with the
// opening quote already consumed, up to and including the closing quote.
func (p *Parser) readQuotedString() (string, error) {
	var sb strings.Builder

	for {
		c, err := p.r.Read()
		if err != nil {
			return "", p.eofError(err, "string")
		}

		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			r, err := p.readEscape()
			if err != nil {
				return "", err
			}

			sb.WriteRune(r)
		default:
			sb.WriteRune(c)
		}
	}
}

// readEscape reads one escape sequence with the backslash already consumed.
func (p *Parser) readEscape() (rune, error) {
	c, err := p.r.Read()
	if err != nil {
		return 0, p.eofError(err, "escape sequence")
	}

	switch c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case '\'':
		return '\'', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		return p.readUnicodeEscape()
	default:
		return 0, p.parseErrorf("invalid escape sequence \\%c", c)
	}
}

// readUnicodeEscape reads a \uXXXX sequence, combining a following \uXXXX
// low surrogate into a single rune when the first one is a high surrogate.
func (p *Parser) readUnicodeEscape() (rune, error) {
	first, err := p.readHex4()
	if err != nil {
		return 0, err
	}

	if !utf16.IsSurrogate(rune(first)) {
		return rune(first), nil
	}

	mark, err := p.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return rune(first), nil
		}

		return 0, err
	}

	if mark != '\\' {
		if uErr := p.r.Unread(mark); uErr != nil {
			return 0, uErr
		}

		return rune(first), nil
	}

	next, err := p.r.Read()
	if err != nil || next != 'u' {
		if err == nil {
			if uErr := p.r.Unread(next); uErr != nil {
				return 0, uErr
			}
		}

		if uErr := p.r.Unread(mark); uErr != nil {
			return 0, uErr
		}

		return rune(first), nil
	}

	second, err := p.readHex4()
	if err != nil {
		return 0, err
	}

	combined := utf16.DecodeRune(rune(first), rune(second))

	return combined, nil
}

func (p *Parser) readHex4() (uint32, error) {
	var v uint32

	for i := 0; i < 4; i++ {
		c, err := p.r.Read()
		if err != nil {
			return 0, p.eofError(err, "\\u escape")
		}

		d, ok := hexDigit(c)
		if !ok {
			return 0, p.parseErrorf("invalid hex digit %q in \\u escape", c)
		}

		v = v<<4 | uint32(d)
	}

	return v, nil
}

func hexDigit(c rune) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	default:
		return 0, false
	}
}
