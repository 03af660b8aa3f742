package comment

import (
	"fmt"

	"docdecl/internal/source"
)

// ParseError reports a malformed command inside a documentation comment. It
// carries what the lexer expected, what it actually saw, and where. It is
// recoverable: the caller decides whether to skip the comment or abort.
type ParseError struct {
	Expected string
	Got      string
	Loc      source.Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %q", e.Loc, e.Expected, e.Got)
}
