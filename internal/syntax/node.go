package syntax

import "docdecl/internal/source"

// VisitResult signals whether child enumeration should continue.
type VisitResult int

const (
	VisitContinue VisitResult = iota
	VisitBreak
)

// Node is the front-end handle the corrector works against. It is opaque
// beyond its kind, its approximate byte extent, and direct-child
// enumeration; the pipeline never mutates it.
type Node interface {
	// Kind returns the node's place in the closed declaration taxonomy.
	Kind() NodeKind

	// Extent returns the approximate [begin, end) byte extent reported by
	// the front end. ok is false when the node has no source attached
	// (synthesized or built-in nodes).
	Extent() (span source.Span, ok bool)

	// VisitChildren enumerates the node's children in source order,
	// stopping early when fn returns VisitBreak. The child layout is the
	// front end's: a template node's children include those of the
	// declaration it wraps.
	VisitChildren(fn func(Node) VisitResult)
}
