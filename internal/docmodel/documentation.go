package docmodel

import "docdecl/internal/comment"

// Documentation is the assembled, immutable result of feeding one entity's
// or one file's comment sections through a builder. Details keep their own
// ordered sequence; inline and list sections interleave in the order they
// were added.
type Documentation struct {
	brief    *comment.Brief
	details  []*comment.Details
	sections []comment.Section
}

// Brief returns the summary section, if the documentation has one.
func (d *Documentation) Brief() (*comment.Brief, bool) {
	return d.brief, d.brief != nil
}

// Details returns the ordered extended-description paragraphs.
func (d *Documentation) Details() []*comment.Details {
	return d.details
}

// Sections returns the ordered inline and list sections.
func (d *Documentation) Sections() []comment.Section {
	return d.sections
}

// Empty reports whether the documentation carries no content.
func (d *Documentation) Empty() bool {
	return d == nil || (d.brief == nil && len(d.details) == 0 && len(d.sections) == 0)
}

// EntityDocumentation is documentation scoped to one declared entity,
// carrying its name and exact declaration text for the rendering layer.
type EntityDocumentation struct {
	Documentation
	name        string
	declaration string
}

func (d *EntityDocumentation) Name() string { return d.name }

// Declaration returns the corrected declaration text of the entity.
func (d *EntityDocumentation) Declaration() string { return d.declaration }

// FileDocumentation is documentation scoped to a whole source file.
type FileDocumentation struct {
	Documentation
	path string
}

func (d *FileDocumentation) Path() string { return d.path }
