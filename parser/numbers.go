package parser

import (
	"errors"
	"io"
	"strconv"
)

// maxNumberLen bounds how many characters a numeric token may buffer before
// the parser gives up, guarding against unbounded input on a malformed or
// hostile stream.
const maxNumberLen = 256

// parseNumber reads a JSON number token and returns int64 when the token
// has no fractional or exponent part, float64 otherwise.
func (p *Parser) parseNumber() (any, error) {
	buf := make([]byte, 0, 32)
	isFloat := false

	for len(buf) < maxNumberLen {
		c, err := p.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}

		switch {
		case c >= '0' && c <= '9':
			buf = append(buf, byte(c))
		case c == '-' || c == '+':
			buf = append(buf, byte(c))
		case c == '.' || c == 'e' || c == 'E':
			isFloat = true
			buf = append(buf, byte(c))
		default:
			if uErr := p.r.Unread(c); uErr != nil {
				return nil, uErr
			}

			return p.finishNumber(buf, isFloat)
		}
	}

	if len(buf) >= maxNumberLen {
		return nil, p.parseErrorf("numeric literal exceeds %d characters", maxNumberLen)
	}

	return p.finishNumber(buf, isFloat)
}

func (p *Parser) finishNumber(buf []byte, isFloat bool) (any, error) {
	if len(buf) == 0 {
		return nil, p.parseErrorf("empty numeric literal")
	}

	text := string(buf)

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.parseErrorf("invalid number %q: %v", text, err)
		}

		return f, nil
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// Too many digits for int64 (but within the 256-char buffer cap):
		// fall back to float64 rather than failing the parse outright.
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return nil, p.parseErrorf("invalid number %q: %v", text, err)
		}

		return f, nil
	}

	return n, nil
}
