package extractor

import (
	"docdecl/internal/docmodel"
	"docdecl/internal/syntax"
)

// Entity is one documented declaration recovered from a source file.
type Entity struct {
	ID          string              `json:"id"` // file:name:start_line
	File        string              `json:"file"`
	Kind        syntax.NodeKind     `json:"-"`
	KindName    string              `json:"kind"`
	Name        string              `json:"name"`
	StartLine   int                 `json:"start_line"`
	EndLine     int                 `json:"end_line"`
	Declaration string              `json:"declaration"` // corrected text
	Doc         *docmodel.EntityDocumentation `json:"-"`
}

// FileResult is everything extracted from one source file. CommentErrors
// collects recoverable lexing failures; the affected entities keep empty
// documentation instead of failing the file.
type FileResult struct {
	File          string
	Doc           *docmodel.FileDocumentation
	Entities      []*Entity
	CommentErrors []error
}
