package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"docdecl/internal/source"
)

// tsNode adapts a tree-sitter node to the front-end Node interface.
type tsNode struct {
	inner *sitter.Node
}

// FromTreeSitter wraps a tree-sitter node. A nil node yields a Node with no
// extent, matching the front end's synthesized/built-in nodes.
func FromTreeSitter(n *sitter.Node) Node {
	return tsNode{inner: n}
}

func (n tsNode) Kind() NodeKind {
	if n.inner == nil {
		return KindUnknown
	}
	return classify(n.inner)
}

func (n tsNode) Extent() (source.Span, bool) {
	if n.inner == nil {
		return source.Span{}, false
	}
	return source.Span{Begin: n.inner.StartByte(), End: n.inner.EndByte()}, true
}

func (n tsNode) VisitChildren(fn func(Node) VisitResult) {
	if n.inner == nil {
		return
	}
	visitChildren(n.inner, fn)
}

// visitChildren enumerates a node's children. The declaration wrapped by a
// template_declaration is transparent: its own children (declarator,
// parameters, body) surface as children of the template node, which is how
// the front end reports template cursors.
func visitChildren(node *sitter.Node, fn func(Node) VisitResult) VisitResult {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if node.Type() == "template_declaration" && isWrappedDeclaration(child.Type()) {
			if visitChildren(child, fn) == VisitBreak {
				return VisitBreak
			}
			continue
		}
		if fn(tsNode{inner: child}) == VisitBreak {
			return VisitBreak
		}
	}
	return VisitContinue
}

func isWrappedDeclaration(typ string) bool {
	switch typ {
	case "function_definition", "declaration", "field_declaration":
		return true
	}
	return false
}

// classify maps tree-sitter C++ grammar node types onto the closed kind
// taxonomy.
func classify(n *sitter.Node) NodeKind {
	switch n.Type() {
	case "function_definition":
		return KindFunctionDecl
	case "declaration", "field_declaration":
		if hasFunctionDeclarator(n) {
			return KindFunctionDecl
		}
		return KindOtherDecl
	case "class_specifier":
		if isPartialSpecialization(n) {
			return KindPartialSpecialization
		}
		return KindClassDecl
	case "struct_specifier":
		if isPartialSpecialization(n) {
			return KindPartialSpecialization
		}
		return KindStructDecl
	case "union_specifier":
		return KindUnionDecl
	case "template_declaration":
		return classifyTemplate(n)
	case "alias_declaration", "type_definition":
		return KindTypeAliasDecl
	case "preproc_def", "preproc_function_def":
		return KindMacroDefinition
	case "type_parameter_declaration":
		return KindTemplateTypeParam
	case "template_template_parameter_declaration":
		return KindTemplateTemplateParam
	case "parameter_declaration", "optional_parameter_declaration", "variadic_parameter_declaration":
		if parentType(n) == "template_parameter_list" {
			return KindNonTypeTemplateParam
		}
		return KindParamDecl
	case "base_class_clause":
		return KindBaseSpecifier
	case "compound_statement":
		return KindCompoundStmt
	case "try_statement":
		return KindTryStmt
	case "namespace_definition", "enum_specifier", "enumerator",
		"friend_declaration", "using_declaration", "linkage_specification",
		"concept_definition", "static_assert_declaration":
		return KindOtherDecl
	}
	return KindUnknown
}

// classifyTemplate resolves what a template_declaration wraps: a class
// template, an alias template, or a function template (the front end folds
// function templates into the function kind).
func classifyTemplate(n *sitter.Node) NodeKind {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "class_specifier", "struct_specifier", "union_specifier":
			if isPartialSpecialization(child) {
				return KindPartialSpecialization
			}
			return KindClassTemplate
		case "alias_declaration":
			return KindTypeAliasDecl
		case "function_definition":
			return KindFunctionDecl
		case "declaration", "field_declaration":
			if hasFunctionDeclarator(child) {
				return KindFunctionDecl
			}
		case "concept_definition":
			return KindOtherDecl
		}
	}
	return KindOtherDecl
}

// isPartialSpecialization reports whether a class/struct specifier names a
// template instantiation, i.e. `template <...> struct foo<T*>`.
func isPartialSpecialization(n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	return name != nil && name.Type() == "template_type"
}

// hasFunctionDeclarator walks the declarator chain looking for a function
// declarator, which distinguishes prototypes from variable declarations.
func hasFunctionDeclarator(n *sitter.Node) bool {
	decl := n.ChildByFieldName("declarator")
	for decl != nil {
		switch decl.Type() {
		case "function_declarator":
			return true
		case "pointer_declarator", "reference_declarator", "parenthesized_declarator", "init_declarator":
			next := decl.ChildByFieldName("declarator")
			if next == nil && decl.NamedChildCount() > 0 {
				// reference_declarator exposes its inner declarator as a
				// plain named child, not a field
				next = decl.NamedChild(int(decl.NamedChildCount()) - 1)
			}
			decl = next
		default:
			return false
		}
	}
	return false
}

func parentType(n *sitter.Node) string {
	p := n.Parent()
	if p == nil {
		return ""
	}
	return p.Type()
}
