package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdecl/internal/source"
	"docdecl/internal/syntax"
)

// stubNode stands in for the front end so each correction rule can be
// exercised against hand-built extents.
type stubNode struct {
	kind     syntax.NodeKind
	span     source.Span
	noSource bool
	children []*stubNode
}

func (n *stubNode) Kind() syntax.NodeKind { return n.kind }

func (n *stubNode) Extent() (source.Span, bool) {
	if n.noSource {
		return source.Span{}, false
	}
	return n.span, true
}

func (n *stubNode) VisitChildren(fn func(syntax.Node) syntax.VisitResult) {
	for _, c := range n.children {
		if fn(c) == syntax.VisitBreak {
			return
		}
	}
}

func node(kind syntax.NodeKind, begin, end uint32, children ...*stubNode) *stubNode {
	return &stubNode{kind: kind, span: source.Span{Begin: begin, End: end}, children: children}
}

func TestReadSource_FunctionBody(t *testing.T) {
	text := "void f(){return;}\n"
	buf := source.NewBuffer("a.cpp", []byte(text))
	body := node(syntax.KindCompoundStmt, 8, 17)
	fn := node(syntax.KindFunctionDecl, 0, 17, body)

	got, err := ReadSource(fn, buf)
	require.NoError(t, err)
	assert.Equal(t, "void f();", got)
	assert.NotContains(t, got, "{")
	assert.True(t, strings.HasSuffix(got, ";"))
}

func TestReadSource_FunctionTryBlock(t *testing.T) {
	text := "void g()try{}catch(...){}\n"
	buf := source.NewBuffer("a.cpp", []byte(text))
	body := node(syntax.KindTryStmt, 8, 25)
	fn := node(syntax.KindFunctionDecl, 0, 25, body)

	got, err := ReadSource(fn, buf)
	require.NoError(t, err)
	assert.Equal(t, "void g();", got)
}

func TestReadSource_FunctionBodyDefects(t *testing.T) {
	text := "void f(){}\n"
	buf := source.NewBuffer("a.cpp", []byte(text))

	t.Run("No Body Child", func(t *testing.T) {
		fn := node(syntax.KindFunctionDecl, 0, 10)
		assert.Panics(t, func() { _, _ = ReadSource(fn, buf) })
	})

	t.Run("Body At Declaration Begin", func(t *testing.T) {
		body := node(syntax.KindCompoundStmt, 0, 10)
		fn := node(syntax.KindFunctionDecl, 0, 10, body)
		assert.Panics(t, func() { _, _ = ReadSource(fn, buf) })
	})
}

func TestReadSource_DeletedFunction(t *testing.T) {
	text := "void f() = delete;\n"
	buf := source.NewBuffer("a.cpp", []byte(text))
	// the reported extent stops before "= delete"
	fn := node(syntax.KindFunctionDecl, 0, 8)

	got, err := ReadSource(fn, buf)
	require.NoError(t, err)
	assert.Equal(t, "void f() = delete;", got)
}

func TestReadSource_FunctionProtoAlreadyTerminated(t *testing.T) {
	text := "void f();  // note\n"
	buf := source.NewBuffer("a.hpp", []byte(text))
	fn := node(syntax.KindFunctionDecl, 0, 9)

	got, err := ReadSource(fn, buf)
	require.NoError(t, err)
	assert.Equal(t, "void f();", got, "an exact extent is left untouched")
}

func TestReadSource_ClassTerminator(t *testing.T) {
	text := "class foo {}; struct bar {};\n"
	buf := source.NewBuffer("a.hpp", []byte(text))

	t.Run("Missing Terminator", func(t *testing.T) {
		cls := node(syntax.KindClassDecl, 0, 12)
		got, err := ReadSource(cls, buf)
		require.NoError(t, err)
		assert.Equal(t, "class foo {};", got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		// extent already includes the terminator: no second one
		cls := node(syntax.KindStructDecl, 14, 28)
		got, err := ReadSource(cls, buf)
		require.NoError(t, err)
		assert.Equal(t, "struct bar {};", got)
		assert.False(t, strings.HasSuffix(got, ";;"))
	})
}

func TestReadSource_TemplateParam(t *testing.T) {
	t.Run("Maximal Munch Drop", func(t *testing.T) {
		text := "template <class C = std::vector<int>> void f();\n"
		buf := source.NewBuffer("a.hpp", []byte(text))
		// the front end consumed the separating '>' as part of the param
		param := node(syntax.KindTemplateTypeParam, 10, 37)

		got, err := ReadSource(param, buf)
		require.NoError(t, err)
		assert.Equal(t, "class C = std::vector<int>", got)
	})

	t.Run("Kept Before Comma", func(t *testing.T) {
		text := "template <class A = set<int>, class B> void f();\n"
		buf := source.NewBuffer("a.hpp", []byte(text))
		param := node(syntax.KindTemplateTypeParam, 10, 28)

		got, err := ReadSource(param, buf)
		require.NoError(t, err)
		// next character is ',' so the trailing '>' is legitimate
		assert.Equal(t, "class A = set<int>", got)
	})

	t.Run("Decltype Completion", func(t *testing.T) {
		text := "template <class T = decltype (foo(1, 2))> struct s;\n"
		buf := source.NewBuffer("a.hpp", []byte(text))
		// extent stops right before the parenthesized decltype arguments
		param := node(syntax.KindNonTypeTemplateParam, 10, 29)

		got, err := ReadSource(param, buf)
		require.NoError(t, err)
		assert.Equal(t, "class T = decltype (foo(1, 2))", got)
	})

	t.Run("Round Trip", func(t *testing.T) {
		text := "template <class C = std::vector<int>> void f();\n"
		buf := source.NewBuffer("a.hpp", []byte(text))
		param := node(syntax.KindTemplateTypeParam, 10, 37)

		got, err := ReadSource(param, buf)
		require.NoError(t, err)
		span, err := ReadSpan(param, buf)
		require.NoError(t, err)
		resliced, err := buf.Slice(span)
		require.NoError(t, err)
		assert.Equal(t, got, resliced)
	})
}

func TestReadSource_MacroDefinition(t *testing.T) {
	t.Run("Missing Closing Paren", func(t *testing.T) {
		buf := source.NewBuffer("a.hpp", []byte("IMPL_DEFINED(bar\n"))
		m := node(syntax.KindMacroDefinition, 0, 16)

		got, err := ReadSource(m, buf)
		require.NoError(t, err)
		assert.Equal(t, "IMPL_DEFINED(bar)", got)
		assert.Equal(t, strings.Count(got, "("), strings.Count(got, ")"))
	})

	t.Run("Already Balanced", func(t *testing.T) {
		buf := source.NewBuffer("a.hpp", []byte("FOO(a, b)\n"))
		m := node(syntax.KindMacroDefinition, 0, 9)

		got, err := ReadSource(m, buf)
		require.NoError(t, err)
		assert.Equal(t, "FOO(a, b)", got)
	})

	t.Run("No Parens", func(t *testing.T) {
		buf := source.NewBuffer("a.hpp", []byte("VERSION 2\n"))
		m := node(syntax.KindMacroDefinition, 0, 9)

		got, err := ReadSource(m, buf)
		require.NoError(t, err)
		assert.Equal(t, "VERSION 2", got)
	})
}

func TestReadSource_TypeAlias(t *testing.T) {
	// the end-to-end shape: extent cut short inside a macro expansion
	buf := source.NewBuffer("a.hpp", []byte("using foo = IMPL(BAR);\nnext"))
	alias := node(syntax.KindTypeAliasDecl, 0, 17)

	got, err := ReadSource(alias, buf)
	require.NoError(t, err)
	assert.Equal(t, "using foo = IMPL(BAR);", got)
}

func TestReadSource_OtherDeclReadsToLineEnd(t *testing.T) {
	buf := source.NewBuffer("a.hpp", []byte("int x = FOO_BAR;\nint y;\n"))
	decl := node(syntax.KindOtherDecl, 0, 9)

	got, err := ReadSource(decl, buf)
	require.NoError(t, err)
	assert.Equal(t, "int x = FOO_BAR;", got)
	assert.NotContains(t, got, "\n")
}

func TestReadSource_ExactKinds(t *testing.T) {
	buf := source.NewBuffer("a.hpp", []byte("void f(int x, int y);\n"))

	t.Run("Param Declaration", func(t *testing.T) {
		p := node(syntax.KindParamDecl, 7, 12)
		got, err := ReadSource(p, buf)
		require.NoError(t, err)
		assert.Equal(t, "int x", got)
	})

	t.Run("Base Specifier", func(t *testing.T) {
		buf := source.NewBuffer("b.hpp", []byte("struct d : public b {};\n"))
		b := node(syntax.KindBaseSpecifier, 11, 19)
		got, err := ReadSource(b, buf)
		require.NoError(t, err)
		assert.Equal(t, "public b", got)
	})
}

func TestReadSource_NoSource(t *testing.T) {
	buf := source.NewBuffer("a.hpp", []byte("int x;\n"))
	n := &stubNode{kind: syntax.KindFunctionDecl, noSource: true}

	got, err := ReadSource(n, buf)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	span, err := ReadSpan(n, buf)
	require.NoError(t, err)
	assert.Equal(t, source.Span{}, span)
}

func TestReadSource_InvalidExtent(t *testing.T) {
	buf := source.NewBuffer("a.hpp", []byte("int x;\n"))
	n := node(syntax.KindOtherDecl, 0, 100)

	_, err := ReadSource(n, buf)
	assert.Error(t, err)
}

func TestReadSpan_CoversCorrectedText(t *testing.T) {
	buf := source.NewBuffer("a.hpp", []byte("using foo = IMPL(BAR);\nnext"))
	alias := node(syntax.KindTypeAliasDecl, 0, 17)

	span, err := ReadSpan(alias, buf)
	require.NoError(t, err)
	assert.Equal(t, source.Span{Begin: 0, End: 22}, span)
}
