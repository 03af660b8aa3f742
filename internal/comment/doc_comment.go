package comment

// DocComment is a fully lexed documentation comment: an ordered sequence of
// sections plus at most one designated brief. The brief is kept apart from
// the sequence so a brief synthesized from inline content can coexist with
// the authored sections.
type DocComment struct {
	brief    *Brief
	sections []Section
}

// NewDocComment assembles a comment from its designated brief (may be nil)
// and its ordered sections. The sections slice must not contain a Brief;
// that is the lexer's contract.
func NewDocComment(brief *Brief, sections []Section) *DocComment {
	return &DocComment{brief: brief, sections: sections}
}

// Brief returns the designated brief, or nil if the comment has none.
func (c *DocComment) Brief() *Brief { return c.brief }

// Sections returns the ordered non-brief sections.
func (c *DocComment) Sections() []Section { return c.sections }

// Empty reports whether the comment carries no content at all.
func (c *DocComment) Empty() bool {
	return c == nil || (c.brief == nil && len(c.sections) == 0)
}
