// Package pbreader implements the pushback UTF-8 code point reader the
// parser runs over: section 4.1 of the specification. It tracks line/column
// position symmetrically across Read and Unread, and keeps a bounded ring
// of recently read code points for error-message context.
package pbreader

import (
	"bufio"
	"fmt"
	"io"
)

// pushbackLimit bounds how many code points may be unread without an
// intervening Read. Exceeding it is a programming bug in the caller, not a
// malformed-input condition.
const pushbackLimit = 8

// ringSize is how many trailing code points Snippet keeps for diagnostics.
const ringSize = 200

// histEntry is one consumed code point together with the position the
// reader was at immediately before consuming it, so Unread can restore
// that exact position.
type histEntry struct {
	r               rune
	preLine, preCol int
}

// pending is a code point queued by Unread, together with the position the
// reader should report immediately after it is replayed by the next Read.
type pending struct {
	r                 rune
	postLine, postCol int
}

// Reader wraps an io.Reader, decoding UTF-8 and exposing Read/Unread with
// 1-based line and 0-based column tracking. Not safe for concurrent use.
type Reader struct {
	br   *bufio.Reader
	line int
	col  int

	history []histEntry
	pend    []pending

	ring     [ringSize]rune
	ringLen  int
	ringNext int
}

// New wraps r for code-point-at-a-time reading.
func New(r io.Reader) *Reader {
	return &Reader{
		br:   bufio.NewReader(r),
		line: 1,
		col:  0,
	}
}

// Read returns the next code point, or io.EOF once the source is
// exhausted. It decodes UTF-8; a malformed byte sequence is reported as the
// Unicode replacement character, matching bufio.Reader.ReadRune.
func (r *Reader) Read() (rune, error) {
	if n := len(r.pend); n > 0 {
		p := r.pend[n-1]
		r.pend = r.pend[:n-1]

		preLine, preCol := r.line, r.col
		r.line, r.col = p.postLine, p.postCol

		r.pushHistory(p.r, preLine, preCol)
		r.appendRing(p.r)

		return p.r, nil
	}

	c, _, err := r.br.ReadRune()
	if err != nil {
		return 0, err
	}

	preLine, preCol := r.line, r.col
	if c == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}

	r.pushHistory(c, preLine, preCol)
	r.appendRing(c)

	return c, nil
}

// Unread pushes c back so the next Read returns it again, restoring the
// line/column position to what it was immediately before c was read.
// Unreading more code points than have been read since the last Unread (up
// to the internal pushback depth) is a programming bug, reported as an
// internal error citing the buffer size.
func (r *Reader) Unread(c rune) error {
	n := len(r.history)
	if n == 0 {
		return fmt.Errorf("pbreader: unread called with no prior read to undo (pushback buffer size %d)", pushbackLimit)
	}

	last := r.history[n-1]
	r.history = r.history[:n-1]

	if len(r.pend) >= pushbackLimit {
		// Restore history so a caller that recovers can still reason
		// about position; this path indicates a caller bug.
		r.history = append(r.history, last)

		return fmt.Errorf("pbreader: pushback buffer exceeded (limit %d)", pushbackLimit)
	}

	postLine, postCol := r.line, r.col
	r.line, r.col = last.preLine, last.preCol

	r.pend = append(r.pend, pending{r: c, postLine: postLine, postCol: postCol})

	return nil
}

// Line returns the current 1-based line number.
func (r *Reader) Line() int {
	return r.line
}

// Col returns the current 0-based column number.
func (r *Reader) Col() int {
	return r.col
}

// Snippet returns the last up-to-200 code points read, for inclusion in
// parse error messages.
func (r *Reader) Snippet() string {
	if r.ringLen < ringSize {
		return string(r.ring[:r.ringLen])
	}

	out := make([]rune, ringSize)
	copy(out, r.ring[r.ringNext:])
	copy(out[ringSize-r.ringNext:], r.ring[:r.ringNext])

	return string(out)
}

// pushHistory caps the undo history at pushbackLimit entries; history
// older than that can never be unread anyway.
func (r *Reader) pushHistory(c rune, preLine, preCol int) {
	r.history = append(r.history, histEntry{r: c, preLine: preLine, preCol: preCol})
	if len(r.history) > pushbackLimit {
		r.history = r.history[len(r.history)-pushbackLimit:]
	}
}

func (r *Reader) appendRing(c rune) {
	r.ring[r.ringNext] = c
	r.ringNext = (r.ringNext + 1) % ringSize

	if r.ringLen < ringSize {
		r.ringLen++
	}
}
