package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docdecl/internal/comment"
	"docdecl/internal/docmodel"
	"docdecl/internal/extractor"
)

// MarkdownGenerator renders extracted documentation as Markdown, one page
// per source file plus an index.
type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// GenerateDocs writes all pages into outputDir.
func (g *MarkdownGenerator) GenerateDocs(outputDir string, results []*extractor.FileResult) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	sorted := make([]*extractor.FileResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].File < sorted[j].File })

	var index strings.Builder
	index.WriteString("# Documentation\n\n")

	for _, r := range sorted {
		page := g.FilePage(r)
		name := pageName(r.File)
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(page), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Fprintf(&index, "- [%s](%s)\n", r.File, name)
	}

	return os.WriteFile(filepath.Join(outputDir, "index.md"), []byte(index.String()), 0644)
}

// FilePage renders one source file: its file-level documentation followed by
// every entity in declaration order.
func (g *MarkdownGenerator) FilePage(r *extractor.FileResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.File)

	if r.Doc != nil {
		writeDocumentation(&sb, &r.Doc.Documentation)
	}

	for _, e := range r.Entities {
		fmt.Fprintf(&sb, "## %s\n\n", e.Name)
		fmt.Fprintf(&sb, "```cpp\n%s\n```\n\n", e.Declaration)
		if e.Doc != nil {
			writeDocumentation(&sb, &e.Doc.Documentation)
		}
	}
	return sb.String()
}

// writeDocumentation emits brief, then details, then the remaining sections
// in authored order.
func writeDocumentation(sb *strings.Builder, doc *docmodel.Documentation) {
	if doc.Empty() {
		return
	}
	if brief, ok := doc.Brief(); ok {
		fmt.Fprintf(sb, "%s\n\n", brief.Text)
	}
	for _, d := range doc.Details() {
		fmt.Fprintf(sb, "%s\n\n", d.Text)
	}
	for _, sec := range doc.Sections() {
		writeSection(sb, sec)
	}
}

func writeSection(sb *strings.Builder, sec comment.Section) {
	switch s := sec.(type) {
	case *comment.Inline:
		fmt.Fprintf(sb, "**%s:** %s\n\n", s.Command, s.Text)
	case *comment.List:
		for _, item := range s.Items {
			if item.Key != "" {
				fmt.Fprintf(sb, "- **%s**: %s\n", item.Key, item.Text)
			} else {
				fmt.Fprintf(sb, "- %s\n", item.Text)
			}
		}
		sb.WriteString("\n")
	default:
		panic(fmt.Sprintf("render: unroutable section %T", s))
	}
}

// pageName flattens a source path into one Markdown file name.
func pageName(path string) string {
	slug := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(path)
	return slug + ".md"
}
