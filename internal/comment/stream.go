package comment

import (
	"strings"

	"docdecl/internal/source"
)

// lineStream walks the lines of a raw comment body with one line of
// lookahead, tracking the source location of the current line.
type lineStream struct {
	lines []string
	pos   int
	start source.Location
}

func newLineStream(raw string, start source.Location) *lineStream {
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return &lineStream{lines: lines, start: start}
}

func (s *lineStream) eof() bool {
	return s.pos >= len(s.lines)
}

// peek returns the current line without consuming it.
func (s *lineStream) peek() string {
	if s.eof() {
		return ""
	}
	return s.lines[s.pos]
}

// bump consumes and returns the current line.
func (s *lineStream) bump() string {
	line := s.peek()
	s.pos++
	return line
}

// skipBlank consumes consecutive empty lines.
func (s *lineStream) skipBlank() {
	for !s.eof() && s.peek() == "" {
		s.pos++
	}
}

// location returns the position of the current line in the original file.
func (s *lineStream) location() source.Location {
	loc := s.start
	loc.Line += s.pos
	return loc
}

func isCommandLine(line string) bool {
	return strings.HasPrefix(line, "\\") || strings.HasPrefix(line, "@")
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || line == "-"
}
