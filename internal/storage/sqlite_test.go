package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdecl/internal/comment"
	"docdecl/internal/docmodel"
	"docdecl/internal/extractor"
	"docdecl/internal/syntax"
)

func testEntity(t *testing.T, id, name, file string) *extractor.Entity {
	t.Helper()
	decl := "void " + name + "();"
	b := docmodel.NewEntityBuilder(name, decl)
	require.NoError(t, b.AddBrief(&comment.Brief{Text: "Brief for " + name}))
	b.AddDetails(&comment.Details{Text: "Details."})
	b.AddSection(&comment.Inline{Command: "returns", Text: "nothing"})
	b.AddSection(&comment.List{Items: []comment.ListItem{{Key: "k", Text: "v"}, {Text: "plain"}}})
	return &extractor.Entity{
		ID:          id,
		File:        file,
		Kind:        syntax.KindFunctionDecl,
		KindName:    syntax.KindFunctionDecl.String(),
		Name:        name,
		StartLine:   1,
		EndLine:     1,
		Declaration: decl,
		Doc:         b.Finish(),
	}
}

func TestSQLiteStore_SaveAndLoadResult(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	fb := docmodel.NewFileBuilder("a.hpp")
	require.NoError(t, fb.AddBrief(&comment.Brief{Text: "File brief."}))
	r := &extractor.FileResult{
		File: "a.hpp",
		Doc:  fb.Finish(),
		Entities: []*extractor.Entity{
			testEntity(t, "a.hpp:f:1", "f", "a.hpp"),
			testEntity(t, "a.hpp:g:5", "g", "a.hpp"),
		},
	}
	require.NoError(t, store.SaveResult(ctx, r))

	loaded, err := store.LoadResult(ctx, "a.hpp")
	require.NoError(t, err)

	require.NotNil(t, loaded.Doc)
	brief, ok := loaded.Doc.Brief()
	require.True(t, ok)
	assert.Equal(t, "File brief.", brief.Text)

	require.Len(t, loaded.Entities, 2)
	e := loaded.Entities[0]
	assert.Equal(t, "f", e.Name)
	assert.Equal(t, syntax.KindFunctionDecl, e.Kind)
	assert.Equal(t, "void f();", e.Declaration)

	brief, ok = e.Doc.Brief()
	require.True(t, ok)
	assert.Equal(t, "Brief for f", brief.Text)
	require.Len(t, e.Doc.Details(), 1)
	require.Len(t, e.Doc.Sections(), 2)
	assert.Equal(t, &comment.Inline{Command: "returns", Text: "nothing"}, e.Doc.Sections()[0])
	list := e.Doc.Sections()[1].(*comment.List)
	assert.Equal(t, []comment.ListItem{{Key: "k", Text: "v"}, {Text: "plain"}}, list.Items)
}

func TestSQLiteStore_SaveResultReplacesSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	r1 := &extractor.FileResult{File: "a.hpp", Entities: []*extractor.Entity{
		testEntity(t, "a.hpp:old:1", "old", "a.hpp"),
	}}
	require.NoError(t, store.SaveResult(ctx, r1))

	r2 := &extractor.FileResult{File: "a.hpp", Entities: []*extractor.Entity{
		testEntity(t, "a.hpp:new:1", "new", "a.hpp"),
	}}
	require.NoError(t, store.SaveResult(ctx, r2))

	loaded, err := store.LoadResult(ctx, "a.hpp")
	require.NoError(t, err)
	require.Len(t, loaded.Entities, 1)
	assert.Equal(t, "new", loaded.Entities[0].Name)
}

func TestSQLiteStore_Files(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveResult(ctx, &extractor.FileResult{File: "b.hpp"}))
	require.NoError(t, store.SaveResult(ctx, &extractor.FileResult{File: "a.hpp"}))

	files, err := store.Files(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.hpp", "b.hpp"}, files)
}
