package docmodel

import (
	"errors"
	"fmt"

	"docdecl/internal/comment"
)

// ErrDuplicateBrief is returned by AddBrief when the builder already holds a
// brief. The first brief stays in place; the caller decides whether that is
// a recoverable condition.
var ErrDuplicateBrief = errors.New("docmodel: documentation already has a brief")

// Builder accumulates comment sections for one documentation object. It is
// created empty, fed through the Add methods, and consumed exactly once by
// Finish; any use after Finish is a programming error and panics.
type Builder struct {
	doc      Documentation
	finished bool
}

// AddBrief installs the summary section. A second call fails with
// ErrDuplicateBrief.
func (b *Builder) AddBrief(s *comment.Brief) error {
	b.mustBeOpen("AddBrief")
	if b.doc.brief != nil {
		return ErrDuplicateBrief
	}
	b.doc.brief = s
	return nil
}

// AddDetails appends an extended-description paragraph.
func (b *Builder) AddDetails(s *comment.Details) {
	b.mustBeOpen("AddDetails")
	b.doc.details = append(b.doc.details, s)
}

// AddSection appends an inline or list section, preserving call order.
// Passing any other section variant is a defect.
func (b *Builder) AddSection(s comment.Section) {
	b.mustBeOpen("AddSection")
	switch s.(type) {
	case *comment.Inline, *comment.List:
		b.doc.sections = append(b.doc.sections, s)
	default:
		panic(fmt.Sprintf("docmodel: AddSection got %T, want inline or list", s))
	}
}

// Finish seals the builder and returns the accumulated documentation.
func (b *Builder) Finish() *Documentation {
	b.mustBeOpen("Finish")
	b.finished = true
	doc := b.doc
	return &doc
}

func (b *Builder) mustBeOpen(op string) {
	if b.finished {
		panic("docmodel: " + op + " called on a finished builder")
	}
}

// EntityBuilder builds documentation for one declared entity.
type EntityBuilder struct {
	Builder
	name        string
	declaration string
}

// NewEntityBuilder starts documentation for the named entity with its
// corrected declaration text.
func NewEntityBuilder(name, declaration string) *EntityBuilder {
	return &EntityBuilder{name: name, declaration: declaration}
}

// Finish seals the builder and returns the entity documentation.
func (b *EntityBuilder) Finish() *EntityDocumentation {
	doc := b.Builder.Finish()
	return &EntityDocumentation{Documentation: *doc, name: b.name, declaration: b.declaration}
}

// FileBuilder builds documentation for one source file.
type FileBuilder struct {
	Builder
	path string
}

// NewFileBuilder starts documentation for the file at path.
func NewFileBuilder(path string) *FileBuilder {
	return &FileBuilder{path: path}
}

// Finish seals the builder and returns the file documentation.
func (b *FileBuilder) Finish() *FileDocumentation {
	doc := b.Builder.Finish()
	return &FileDocumentation{Documentation: *doc, path: b.path}
}

// SectionSink is the intake surface shared by the builder flavors.
type SectionSink interface {
	AddBrief(*comment.Brief) error
	AddDetails(*comment.Details)
	AddSection(comment.Section)
}

// SetSections routes every section of a lexed comment into a builder: the
// designated brief first, then the section sequence in authored order, with
// details separated from inline/list sections. Sections are cloned on the
// way in, so the comment stays independently usable.
func SetSections(sink SectionSink, c *comment.DocComment) error {
	if c == nil {
		return nil
	}
	if brief := c.Brief(); brief != nil {
		if err := sink.AddBrief(brief.Clone().(*comment.Brief)); err != nil {
			return err
		}
	}
	for _, sec := range c.Sections() {
		switch s := sec.Clone().(type) {
		case *comment.Details:
			sink.AddDetails(s)
		case *comment.Inline:
			sink.AddSection(s)
		case *comment.List:
			sink.AddSection(s)
		default:
			// the lexer never emits anything else; a new variant must be
			// routed here explicitly, not dropped
			panic(fmt.Sprintf("docmodel: unroutable comment section %T", s))
		}
	}
	return nil
}
