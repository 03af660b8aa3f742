package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"docdecl/internal/comment"
	"docdecl/internal/docmodel"
	"docdecl/internal/source"
	"docdecl/internal/syntax"
)

// declQuery captures every top-level declaration form the pipeline documents.
// Template declarations are captured as a whole; their wrapped declaration is
// skipped to avoid double extraction.
const declQuery = `
	(function_definition) @decl
	(declaration) @decl
	(class_specifier) @decl
	(struct_specifier) @decl
	(union_specifier) @decl
	(alias_declaration) @decl
	(type_definition) @decl
	(template_declaration) @decl
	(preproc_def) @decl
	(preproc_function_def) @decl
`

// Extractor recovers documented entities from C++ source files.
type Extractor struct {
	lang *sitter.Language
}

func New() *Extractor {
	return &Extractor{lang: cpp.GetLanguage()}
}

// ExtractFile parses one source file and extracts all documented
// declarations with their corrected declaration text. Comment lexing
// failures are collected on the result, not fatal for the file.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*FileResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.Extract(ctx, path, src)
}

// Extract runs extraction over an in-memory source text.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (*FileResult, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	buf := source.NewBuffer(path, src)
	result := &FileResult{File: path}

	result.Doc, err = e.fileDoc(tree.RootNode(), src, buf, path, result)
	if err != nil {
		return nil, err
	}

	query, err := sitter.NewQuery([]byte(declQuery), e.lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	seen := make(map[uint32]bool)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			node := c.Node
			if seen[node.StartByte()] || skipNode(node) {
				continue
			}
			seen[node.StartByte()] = true

			entity, err := e.extractEntity(node, src, buf, path, result)
			if err != nil {
				return nil, err
			}
			if entity != nil {
				result.Entities = append(result.Entities, entity)
			}
		}
	}
	return result, nil
}

// skipNode filters captures that are covered elsewhere: declarations wrapped
// by a captured template, and anything nested inside a function body.
func skipNode(n *sitter.Node) bool {
	if p := n.Parent(); p != nil && p.Type() == "template_declaration" {
		return true
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "compound_statement" {
			return true
		}
	}
	return false
}

func (e *Extractor) extractEntity(node *sitter.Node, src []byte, buf *source.Buffer, path string, result *FileResult) (*Entity, error) {
	wrapped := syntax.FromTreeSitter(node)
	kind := wrapped.Kind()
	if !kind.IsDeclaration() || kind == syntax.KindParamDecl || kind == syntax.KindBaseSpecifier {
		return nil, nil
	}

	name := entityName(node, src)
	if name == "" {
		return nil, nil
	}

	decl, err := ReadSource(wrapped, buf)
	if err != nil {
		return nil, fmt.Errorf("declaration text for %s: %w", name, err)
	}

	builder := docmodel.NewEntityBuilder(name, decl)
	if raw, start, ok := docCommentBefore(node, src); ok {
		doc, perr := comment.Parse(raw, buf.LocationAt(start))
		if perr != nil {
			result.CommentErrors = append(result.CommentErrors, fmt.Errorf("comment for %s: %w", name, perr))
		} else if err := docmodel.SetSections(builder, doc); err != nil {
			result.CommentErrors = append(result.CommentErrors, fmt.Errorf("comment for %s: %w", name, err))
		}
	}

	return &Entity{
		ID:          fmt.Sprintf("%s:%s:%d", path, name, node.StartPoint().Row+1),
		File:        path,
		Kind:        kind,
		KindName:    kind.String(),
		Name:        name,
		StartLine:   int(node.StartPoint().Row + 1),
		EndLine:     int(node.EndPoint().Row + 1),
		Declaration: decl,
		Doc:         builder.Finish(),
	}, nil
}

// fileDoc looks for a leading comment block marked with a \file command and
// turns it into file-scoped documentation.
func (e *Extractor) fileDoc(root *sitter.Node, src []byte, buf *source.Buffer, path string, result *FileResult) (*docmodel.FileDocumentation, error) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "comment" {
			break
		}
		raw := cleanComment(child.Content(src))
		if !hasFileCommand(raw) {
			continue
		}
		doc, perr := comment.Parse(raw, buf.LocationAt(child.StartByte()))
		if perr != nil {
			result.CommentErrors = append(result.CommentErrors, fmt.Errorf("file comment: %w", perr))
			return nil, nil
		}
		builder := docmodel.NewFileBuilder(path)
		if err := docmodel.SetSections(builder, doc); err != nil {
			return nil, err
		}
		return builder.Finish(), nil
	}
	return nil, nil
}

func hasFileCommand(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "\\file" || line == "@file" ||
			strings.HasPrefix(line, "\\file ") || strings.HasPrefix(line, "@file ") {
			return true
		}
	}
	return false
}

// docCommentBefore collects the run of comment siblings directly above a
// node, allowing at most one blank line between them. It returns the cleaned
// comment text and the byte offset of its first line.
func docCommentBefore(node *sitter.Node, src []byte) (string, uint32, bool) {
	current := node
	var lines []string
	start := uint32(0)
	for {
		prev := current.PrevSibling()
		if prev == nil || current.StartPoint().Row-prev.EndPoint().Row > 1 {
			break
		}
		if prev.Type() != "comment" {
			break
		}
		if hasFileCommand(cleanComment(prev.Content(src))) {
			break
		}
		lines = append([]string{prev.Content(src)}, lines...)
		start = prev.StartByte()
		current = prev
	}
	if len(lines) == 0 {
		return "", 0, false
	}
	return cleanComment(strings.Join(lines, "\n")), start, true
}

// entityName digs the declared name out of a node, unwrapping templates and
// declarator chains.
func entityName(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "template_declaration":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "template_parameter_list" {
				continue
			}
			if name := entityName(child, src); name != "" {
				return name
			}
		}
		return ""
	case "class_specifier", "struct_specifier", "union_specifier", "enum_specifier",
		"alias_declaration", "preproc_def", "preproc_function_def", "concept_definition",
		"namespace_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(src)
		}
		return ""
	case "type_definition":
		if decl := node.ChildByFieldName("declarator"); decl != nil {
			return decl.Content(src)
		}
		return ""
	case "function_definition", "declaration", "field_declaration":
		return declaratorName(node.ChildByFieldName("declarator"), src)
	}
	return ""
}

func declaratorName(decl *sitter.Node, src []byte) string {
	for decl != nil {
		switch decl.Type() {
		case "identifier", "field_identifier", "qualified_identifier",
			"destructor_name", "operator_name":
			return decl.Content(src)
		case "function_declarator", "pointer_declarator", "reference_declarator",
			"parenthesized_declarator", "init_declarator", "array_declarator":
			next := decl.ChildByFieldName("declarator")
			if next == nil && decl.NamedChildCount() > 0 {
				next = decl.NamedChild(0)
			}
			decl = next
		default:
			return ""
		}
	}
	return ""
}

// cleanComment strips comment markers while keeping the body's line
// structure.
func cleanComment(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	var cleaned []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "///")
		l = strings.TrimPrefix(l, "//!")
		l = strings.TrimPrefix(l, "//")
		l = strings.TrimPrefix(l, "/**")
		l = strings.TrimPrefix(l, "/*!")
		l = strings.TrimPrefix(l, "/*")
		l = strings.TrimSuffix(l, "*/")
		l = strings.TrimSpace(l)
		if l == "*" {
			l = ""
		}
		l = strings.TrimPrefix(l, "* ")
		cleaned = append(cleaned, strings.TrimSpace(l))
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
