// Package parser implements the state machine described in section 4.2/4.6
// of the specification: it consumes a pbreader.Reader and produces an
// intermediate tree of *jnode.Node, recognizing the dialect's reserved meta
// keys (@type, @id, @ref, @items, @keys and their short aliases).
package parser

import (
	"errors"
	"io"
	"strings"

	"go.jacobcolvin.com/jsonio/ioerr"
	"go.jacobcolvin.com/jsonio/jnode"
	"go.jacobcolvin.com/jsonio/pbreader"
)

// metaAliases maps the short meta-key spellings to their long form.
var metaAliases = map[string]string{
	"@t": "@type",
	"@i": "@id",
	"@r": "@ref",
	"@k": "@keys",
	"@e": "@items",
}

// IDTable maps an @id value to the Node that declared it, populated while
// parsing and consumed by the resolver's forward-reference patch pass.
type IDTable map[int64]*jnode.Node

// Options configures a Parser.
type Options struct {
	// TypeNameMap is the caller's forward (long name -> short alias) type
	// substitution map, the same map used on encode. The parser applies
	// its inverse to every @type value it reads.
	TypeNameMap map[string]string
}

// Parser turns a byte stream into an intermediate jnode.Node tree (or a
// bare scalar, at the top level).
type Parser struct {
	r               *pbreader.Reader
	ids             IDTable
	reverseTypeName map[string]string
}

// New creates a Parser reading from r.
func New(r io.Reader, opts Options) *Parser {
	p := &Parser{
		r:   pbreader.New(r),
		ids: IDTable{},
	}

	if len(opts.TypeNameMap) > 0 {
		p.reverseTypeName = make(map[string]string, len(opts.TypeNameMap))
		for long, short := range opts.TypeNameMap {
			p.reverseTypeName[short] = long
		}
	}

	return p
}

// Parse reads one top-level JSON value. The result is one of: *jnode.Node,
// string, bool, int64, float64, or nil. A bare top-level array is
// wrapped in a KindArrayLike Node so it carries the same @items shape the
// resolver expects from a named field.
func (p *Parser) Parse() (any, IDTable, error) {
	if err := p.skipWhitespace(); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, nil, err
	}

	if items, ok := v.([]any); ok {
		v = &jnode.Node{Kind: jnode.KindArrayLike, ID: jnode.UnassignedID, Items: items}
	}

	return v, p.ids, nil
}

// parseValue dispatches on the next non-whitespace rune. It implements the
// ReadValue transitions of the FSM in section 4.6: recursing directly for
// nested objects/arrays rather than returning control to a caller loop.
func (p *Parser) parseValue() (any, error) {
	if err := p.skipWhitespace(); err != nil {
		return nil, p.eofError(err, "value")
	}

	c, err := p.r.Read()
	if err != nil {
		return nil, p.eofError(err, "value")
	}

	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == '-' || (c >= '0' && c <= '9'):
		if uErr := p.r.Unread(c); uErr != nil {
			return nil, uErr
		}

		return p.parseNumber()
	case isLetter(c):
		if uErr := p.r.Unread(c); uErr != nil {
			return nil, uErr
		}

		return p.parseLiteral()
	default:
		return nil, p.parseErrorf("unexpected character %q", c)
	}
}

// parseObject implements ReadStartObject/ReadField/ReadValue/ReadPostValue
// for a `{...}` already past its opening brace.
func (p *Parser) parseObject() (*jnode.Node, error) {
	node := jnode.New()

	var (
		pendingItems []any
		haveItems    bool
		pendingKeys  []any
		haveKeys     bool
	)

	if err := p.skipWhitespace(); err != nil {
		return nil, p.eofError(err, "object")
	}

	c, err := p.r.Read()
	if err != nil {
		return nil, p.eofError(err, "object")
	}

	if c == '}' {
		return node, nil
	}

	if uErr := p.r.Unread(c); uErr != nil {
		return nil, uErr
	}

	for {
		if err := p.skipWhitespace(); err != nil {
			return nil, p.eofError(err, "object field")
		}

		qc, err := p.r.Read()
		if err != nil {
			return nil, p.eofError(err, "object field")
		}

		if qc != '"' {
			return nil, p.parseErrorf("expected field name, got %q", qc)
		}

		rawKey, err := p.readQuotedString()
		if err != nil {
			return nil, err
		}

		key := normalizeMetaKey(rawKey)

		if err := p.skipWhitespace(); err != nil {
			return nil, p.eofError(err, "colon")
		}

		colon, err := p.r.Read()
		if err != nil {
			return nil, p.eofError(err, "colon")
		}

		if colon != ':' {
			return nil, p.parseErrorf("expected ':' after field name %q, got %q", rawKey, colon)
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		switch key {
		case "@type":
			name, ok := val.(string)
			if !ok {
				return nil, p.parseErrorf("@type value must be a string")
			}

			node.Type = p.resolveTypeName(name)
		case "@id":
			id, ok := asInt64(val)
			if !ok {
				return nil, p.parseErrorf("@id value must be an integer")
			}

			node.ID = id
			p.ids[id] = node
		case "@ref":
			id, ok := asInt64(val)
			if !ok {
				return nil, p.parseErrorf("@ref value must be an integer")
			}

			node.Set("@ref", id)
		case "@items":
			items, ok := val.([]any)
			if !ok {
				node.Set(key, val)

				break
			}

			pendingItems = items
			haveItems = true
		case "@keys":
			keys, ok := val.([]any)
			if !ok {
				node.Set(key, val)

				break
			}

			pendingKeys = keys
			haveKeys = true
		default:
			node.Set(key, val)
		}

		if err := p.skipWhitespace(); err != nil {
			return nil, p.eofError(err, "object")
		}

		sep, err := p.r.Read()
		if err != nil {
			return nil, p.eofError(err, "object")
		}

		switch sep {
		case '}':
			if haveItems {
				if haveKeys {
					if len(pendingKeys) != len(pendingItems) {
						return nil, p.parseErrorf("@keys and @items must have equal length (got %d and %d)",
							len(pendingKeys), len(pendingItems))
					}

					node.Kind = jnode.KindMapLike
					node.ItemKeys = pendingKeys
				} else {
					node.Kind = jnode.KindArrayLike
				}

				node.Items = pendingItems
			}

			return node, nil
		case ',':
			continue
		default:
			return nil, p.parseErrorf("expected ',' or '}' inside object, got %q", sep)
		}
	}
}

// parseArray implements the array grammar inline, per section 4.6's note
// that nested arrays are read directly without returning to the FSM.
func (p *Parser) parseArray() ([]any, error) {
	items := []any{}

	if err := p.skipWhitespace(); err != nil {
		return nil, p.eofError(err, "array")
	}

	c, err := p.r.Read()
	if err != nil {
		return nil, p.eofError(err, "array")
	}

	if c == ']' {
		return items, nil
	}

	if uErr := p.r.Unread(c); uErr != nil {
		return nil, uErr
	}

	for {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		items = append(items, val)

		sep, err := p.readSeparator()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, p.parseErrorf("Expected ',' or ']' inside array, got EOF")
			}

			return nil, err
		}

		switch sep {
		case ']':
			return items, nil
		case ',':
			continue
		default:
			return nil, p.parseErrorf("Expected ',' or ']' inside array, got %q", sep)
		}
	}
}

// readSeparator skips whitespace and reads the next rune, for the
// separator position after an array or object element: the caller expects
// one of a small fixed set of runes there, so an EOF belongs to that
// caller's own "expected X or Y" message rather than the generic
// unexpected-EOF wording eofError produces for a value in progress.
func (p *Parser) readSeparator() (rune, error) {
	if err := p.skipWhitespace(); err != nil {
		return 0, err
	}

	return p.r.Read()
}

// parseLiteral reads the case-insensitive tokens true, false, and null.
func (p *Parser) parseLiteral() (any, error) {
	word, err := p.readBareWord()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(word) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	default:
		return nil, p.parseErrorf("unrecognized literal %q", word)
	}
}

func (p *Parser) readBareWord() (string, error) {
	var sb strings.Builder

	for {
		c, err := p.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return "", err
		}

		if !isLetter(c) {
			if uErr := p.r.Unread(c); uErr != nil {
				return "", uErr
			}

			break
		}

		sb.WriteRune(c)
	}

	return sb.String(), nil
}

func (p *Parser) skipWhitespace() error {
	for {
		c, err := p.r.Read()
		if err != nil {
			return err
		}

		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return p.r.Unread(c)
		}
	}
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func normalizeMetaKey(key string) string {
	if long, ok := metaAliases[key]; ok {
		return long
	}

	return key
}

func (p *Parser) resolveTypeName(name string) string {
	if p.reverseTypeName == nil {
		return name
	}

	if long, ok := p.reverseTypeName[name]; ok {
		return long
	}

	return name
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}

	return 0, false
}

func (p *Parser) parseErrorf(format string, args ...any) *ioerr.Error {
	return ioerr.Parsef(p.r.Line(), p.r.Col(), p.r.Snippet(), format, args...)
}

func (p *Parser) eofError(err error, context string) error {
	if errors.Is(err, io.EOF) {
		return ioerr.Parsef(p.r.Line(), p.r.Col(), p.r.Snippet(), "unexpected EOF while reading %s", context)
	}

	return err
}
