package extractor

import (
	"fmt"
	"strings"

	"docdecl/internal/source"
	"docdecl/internal/syntax"
)

// ReadSource returns the exact declaration text for a node, compensating for
// the known ways the front end misreports extents. Nodes without an attached
// source yield an empty string.
func ReadSource(node syntax.Node, buf *source.Buffer) (string, error) {
	span, ok := node.Extent()
	if !ok {
		return "", nil
	}
	raw, err := buf.Slice(span)
	if err != nil {
		return "", fmt.Errorf("node extent: %w", err)
	}
	return fixup(node, buf, raw, span), nil
}

// ReadSpan returns the corrected extent of a node. The end offset is derived
// from the corrected text, since corrections only ever move the end.
func ReadSpan(node syntax.Node, buf *source.Buffer) (source.Span, error) {
	span, ok := node.Extent()
	if !ok {
		return source.Span{}, nil
	}
	text, err := ReadSource(node, buf)
	if err != nil {
		return source.Span{}, err
	}
	return source.Span{Begin: span.Begin, End: span.Begin + uint32(len(text))}, nil
}

// fixup applies exactly one extent-correction rule, selected by node kind and
// the trailing character of the raw slice. Lookahead reads the buffer from
// the reported end onward; no rule re-invokes the front end.
func fixup(node syntax.Node, buf *source.Buffer, raw string, span source.Span) string {
	kind := node.Kind()

	switch {
	case kind.IsFunction():
		// A reported extent covering the whole definition shrinks to the
		// declaration, cut at the body. An extent cut short ("= delete"
		// isn't covered) extends to the next semicolon. An extent already
		// ending in one is exact.
		switch {
		case lastByte(raw) == '}':
			return truncateAtBody(node, raw, span)
		case lastByte(raw) != ';':
			return readUntil(buf, raw, span.End, ';') + ";"
		}
		return raw

	case kind.IsClass():
		// Class extents stop before the trailing semicolon.
		if lastByte(raw) != ';' {
			return raw + ";"
		}
		return raw

	case kind.IsTemplateParam():
		// Two distinct extent defects, both handled by lookahead past the
		// reported end.
		return fixupTemplateParam(buf, raw, span.End)

	case kind == syntax.KindMacroDefinition:
		// A macro whose body ends in an expansion loses its closing paren.
		return closeMacroParen(raw)

	case kind == syntax.KindTypeAliasDecl:
		// Type-alias extents come back short of the semicolon.
		if lastByte(raw) != ';' {
			return readUntil(buf, raw, span.End, ';') + ";"
		}
		return raw

	case kind == syntax.KindParamDecl, kind == syntax.KindBaseSpecifier:
		// Reported exactly.
		return raw

	case kind.IsDeclaration():
		// Unknown extent defects on any other declaration: read to the end
		// of the line as a safety margin.
		return readToLineEnd(buf, raw, span.End)
	}

	// Non-declarations (statements, synthesized nodes) are never corrected.
	return raw
}

// truncateAtBody cuts a function definition at its body child and appends a
// statement terminator. The body is the first direct child that is a
// compound statement or a try statement.
func truncateAtBody(node syntax.Node, raw string, span source.Span) string {
	var bodyBegin uint32
	found := false
	node.VisitChildren(func(child syntax.Node) syntax.VisitResult {
		k := child.Kind()
		if k == syntax.KindCompoundStmt || k == syntax.KindTryStmt {
			if ext, ok := child.Extent(); ok {
				bodyBegin = ext.Begin
				found = true
			}
			return syntax.VisitBreak
		}
		return syntax.VisitContinue
	})
	if !found || bodyBegin <= span.Begin {
		// The raw text ended in '}' so a body must exist, strictly after the
		// declaration's own begin. Anything else means the front end broke
		// an assumption we build on.
		panic(fmt.Sprintf("extractor: function body begins at %d, not after declaration begin %d", bodyBegin, span.Begin))
	}
	return raw[:bodyBegin-span.Begin] + ";"
}

// fixupTemplateParam handles decltype contents missing from the reported
// extent, then un-consumes a '>' swallowed by maximal-munch tokenization of
// a directly following closing angle bracket.
func fixupTemplateParam(buf *source.Buffer, raw string, end uint32) string {
	var sb strings.Builder
	sb.WriteString(raw)

	i := end
	for isSpace(buf.At(i)) && int(i) < buf.Len() {
		i++
	}

	if buf.At(i) == '(' {
		sb.WriteByte('(')
		i++
		for depth := 1; depth != 0 && int(i) < buf.Len(); i++ {
			c := buf.At(i)
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
			sb.WriteByte(c)
		}
	}

	text := sb.String()
	if next := buf.At(i); next != '>' && next != ',' && lastByte(text) == '>' {
		text = text[:len(text)-1]
	}
	return text
}

// closeMacroParen scans the raw text backward; a '(' met before any ')'
// means the extent lost its closing paren.
func closeMacroParen(raw string) string {
	for i := len(raw) - 1; i >= 0; i-- {
		switch raw[i] {
		case ')':
			return raw
		case '(':
			return raw + ")"
		}
	}
	return raw
}

// readUntil appends buffer bytes from offset i until (and excluding) stop.
func readUntil(buf *source.Buffer, raw string, i uint32, stop byte) string {
	var sb strings.Builder
	sb.WriteString(raw)
	for int(i) < buf.Len() && buf.At(i) != stop {
		sb.WriteByte(buf.At(i))
		i++
	}
	return sb.String()
}

// readToLineEnd appends buffer bytes from offset i up to the next newline or
// the end of the buffer.
func readToLineEnd(buf *source.Buffer, raw string, i uint32) string {
	var sb strings.Builder
	sb.WriteString(raw)
	for int(i) < buf.Len() && buf.At(i) != '\n' {
		sb.WriteByte(buf.At(i))
		i++
	}
	return sb.String()
}

func lastByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
