package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdecl/internal/comment"
	"docdecl/internal/docmodel"
	"docdecl/internal/extractor"
)

func entityWithDoc(t *testing.T) *extractor.Entity {
	t.Helper()
	b := docmodel.NewEntityBuilder("compute", "int compute(int x);")
	require.NoError(t, b.AddBrief(&comment.Brief{Text: "Computes the answer."}))
	b.AddDetails(&comment.Details{Text: "More words."})
	b.AddSection(&comment.Inline{Command: "param x", Text: "the input"})
	b.AddSection(&comment.List{Items: []comment.ListItem{{Key: "note", Text: "stable"}, {Text: "fast"}}})
	return &extractor.Entity{
		Name:        "compute",
		Declaration: "int compute(int x);",
		Doc:         b.Finish(),
	}
}

func TestFilePage(t *testing.T) {
	fb := docmodel.NewFileBuilder("math.hpp")
	require.NoError(t, fb.AddBrief(&comment.Brief{Text: "Math helpers."}))

	r := &extractor.FileResult{
		File:     "math.hpp",
		Doc:      fb.Finish(),
		Entities: []*extractor.Entity{entityWithDoc(t)},
	}

	page := NewMarkdownGenerator().FilePage(r)

	assert.Contains(t, page, "# math.hpp\n")
	assert.Contains(t, page, "Math helpers.\n")
	assert.Contains(t, page, "## compute\n")
	assert.Contains(t, page, "```cpp\nint compute(int x);\n```")
	assert.Contains(t, page, "Computes the answer.")
	assert.Contains(t, page, "More words.")
	assert.Contains(t, page, "**param x:** the input")
	assert.Contains(t, page, "- **note**: stable")
	assert.Contains(t, page, "- fast")
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()
	r := &extractor.FileResult{
		File:     filepath.Join("include", "math.hpp"),
		Entities: []*extractor.Entity{entityWithDoc(t)},
	}

	err := NewMarkdownGenerator().GenerateDocs(dir, []*extractor.FileResult{r})
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "math.hpp")

	page, err := os.ReadFile(filepath.Join(dir, pageName(r.File)))
	require.NoError(t, err)
	assert.Contains(t, string(page), "## compute")
}

func TestPageName(t *testing.T) {
	assert.Equal(t, "include_math.hpp.md", pageName("include/math.hpp"))
}
