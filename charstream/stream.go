// Package charstream provides a positioned, rewindable rune source for the
// lexer. It generalizes the teacher's inline position/readPosition/line/
// column tracking in lexer/lexer.go into its own collaborator, the way
// original_source/stream.py's Stream dataclass separates "where am I in the
// text" from "what does this word mean".
package charstream

import "gossip/langerr"

// Stream walks a rune slice one character at a time, tracking line/column
// and allowing a single character of pushback (Unget), mirroring
// stream.py's next_char/unget pair.
type Stream struct {
	runes  []rune
	pos    int
	line   int
	column int

	ungot     bool
	ungotLine int
	ungotCol  int
}

// New builds a Stream over src.
func New(src string) *Stream {
	return &Stream{runes: []rune(src), line: 1, column: 0}
}

// AtEnd reports whether the stream has no more characters.
func (s *Stream) AtEnd() bool {
	return s.pos >= len(s.runes)
}

// Next returns the next rune, advancing position and tracking line/column.
// Returns langerr.EndOfStream when exhausted.
func (s *Stream) Next() (rune, error) {
	if s.ungot {
		s.ungot = false
		r := s.runes[s.pos]
		s.pos++
		s.line, s.column = s.ungotLine, s.ungotCol
		return r, nil
	}
	if s.AtEnd() {
		return 0, langerr.EndOfStream{}
	}
	r := s.runes[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return r, nil
}

// Peek returns the next rune without consuming it, or false if at end.
func (s *Stream) Peek() (rune, bool) {
	if s.AtEnd() {
		return 0, false
	}
	return s.runes[s.pos], true
}

// PeekAt returns the rune offset characters ahead of the current position
// without consuming anything, or false if out of range.
func (s *Stream) PeekAt(offset int) (rune, bool) {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.runes) {
		return 0, false
	}
	return s.runes[idx], true
}

// Unget pushes the most recently returned rune back onto the stream. Only
// one level of pushback is supported, matching stream.py's unget.
func (s *Stream) Unget() {
	if s.pos == 0 {
		return
	}
	s.ungotLine, s.ungotCol = s.line, s.column
	s.pos--
	s.ungot = true
	if s.runes[s.pos] == '\n' {
		s.line--
	} else {
		s.column--
	}
}

// Position reports the current line and column, 1-based line, 0-based
// column before the next character is consumed.
func (s *Stream) Position() (line, column int) {
	return s.line, s.column
}
