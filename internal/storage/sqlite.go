package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"docdecl/internal/comment"
	"docdecl/internal/docmodel"
	"docdecl/internal/extractor"
	"docdecl/internal/syntax"
)

// SQLiteStore persists extraction results so rendering can run without
// re-parsing the sources.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			doc JSON
		);`,
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			file TEXT,
			kind TEXT,
			name TEXT,
			start_line INTEGER,
			end_line INTEGER,
			declaration TEXT,
			doc JSON
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entities_file ON entities(file);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveResult replaces everything previously stored for the result's file.
func (s *SQLiteStore) SaveResult(ctx context.Context, r *extractor.FileResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entities WHERE file = ?", r.File); err != nil {
		return err
	}

	var fileDoc []byte
	if r.Doc != nil {
		fileDoc, err = json.Marshal(encodeDoc(&r.Doc.Documentation))
		if err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO files (path, doc) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET doc=excluded.doc
	`, r.File, fileDoc); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entities (id, file, kind, name, start_line, end_line, declaration, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range r.Entities {
		var doc []byte
		if e.Doc != nil {
			doc, err = json.Marshal(encodeDoc(&e.Doc.Documentation))
			if err != nil {
				return err
			}
		}
		if _, err := stmt.Exec(e.ID, e.File, e.KindName, e.Name, e.StartLine, e.EndLine, e.Declaration, doc); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Files lists every stored source file path.
func (s *SQLiteStore) Files(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, rows.Err()
}

// LoadResult rebuilds the extraction result for one file.
func (s *SQLiteStore) LoadResult(ctx context.Context, file string) (*extractor.FileResult, error) {
	result := &extractor.FileResult{File: file}

	var fileDoc []byte
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM files WHERE path = ?", file).Scan(&fileDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to load file %s: %w", file, err)
	}
	if len(fileDoc) > 0 {
		builder := docmodel.NewFileBuilder(file)
		if err := decodeDocInto(builder, fileDoc); err != nil {
			return nil, err
		}
		result.Doc = builder.Finish()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, name, start_line, end_line, declaration, doc
		FROM entities WHERE file = ? ORDER BY start_line
	`, file)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e := &extractor.Entity{File: file}
		var doc []byte
		if err := rows.Scan(&e.ID, &e.KindName, &e.Name, &e.StartLine, &e.EndLine, &e.Declaration, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		e.Kind = syntax.KindFromName(e.KindName)
		builder := docmodel.NewEntityBuilder(e.Name, e.Declaration)
		if len(doc) > 0 {
			if err := decodeDocInto(builder, doc); err != nil {
				return nil, err
			}
		}
		e.Doc = builder.Finish()
		result.Entities = append(result.Entities, e)
	}
	return result, rows.Err()
}

// docJSON is the stored shape of a documentation object.
type docJSON struct {
	Brief    *string       `json:"brief,omitempty"`
	Details  []string      `json:"details,omitempty"`
	Sections []sectionJSON `json:"sections,omitempty"`
}

type sectionJSON struct {
	Kind    string     `json:"kind"` // "inline" or "list"
	Command string     `json:"command,omitempty"`
	Text    string     `json:"text,omitempty"`
	Items   []itemJSON `json:"items,omitempty"`
}

type itemJSON struct {
	Key  string `json:"key,omitempty"`
	Text string `json:"text"`
}

func encodeDoc(d *docmodel.Documentation) docJSON {
	var out docJSON
	if brief, ok := d.Brief(); ok {
		out.Brief = &brief.Text
	}
	for _, det := range d.Details() {
		out.Details = append(out.Details, det.Text)
	}
	for _, sec := range d.Sections() {
		switch s := sec.(type) {
		case *comment.Inline:
			out.Sections = append(out.Sections, sectionJSON{Kind: "inline", Command: s.Command, Text: s.Text})
		case *comment.List:
			items := make([]itemJSON, len(s.Items))
			for i, item := range s.Items {
				items[i] = itemJSON{Key: item.Key, Text: item.Text}
			}
			out.Sections = append(out.Sections, sectionJSON{Kind: "list", Items: items})
		default:
			panic(fmt.Sprintf("storage: unroutable section %T", s))
		}
	}
	return out
}

func decodeDocInto(sink docmodel.SectionSink, raw []byte) error {
	var in docJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("failed to decode doc: %w", err)
	}
	if in.Brief != nil {
		if err := sink.AddBrief(&comment.Brief{Text: *in.Brief}); err != nil {
			return err
		}
	}
	for _, text := range in.Details {
		sink.AddDetails(&comment.Details{Text: text})
	}
	for _, sec := range in.Sections {
		switch sec.Kind {
		case "inline":
			sink.AddSection(&comment.Inline{Command: sec.Command, Text: sec.Text})
		case "list":
			items := make([]comment.ListItem, len(sec.Items))
			for i, item := range sec.Items {
				items[i] = comment.ListItem{Key: item.Key, Text: item.Text}
			}
			sink.AddSection(&comment.List{Items: items})
		default:
			return fmt.Errorf("unknown section kind %q", sec.Kind)
		}
	}
	return nil
}
