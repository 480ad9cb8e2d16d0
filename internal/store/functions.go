package store

import (
	"database/sql"
	"fmt"
)

// --- File operations ---

func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, language, hash, line_count, last_indexed) VALUES (?, ?, ?, ?, ?)",
		f.Path, f.Language, f.Hash, f.LineCount, f.LastIndexed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, language, hash, line_count, last_indexed FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Language, &f.Hash, &f.LineCount, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

func (s *Store) Files() ([]*File, error) {
	return s.queryFiles("SELECT id, path, language, hash, line_count, last_indexed FROM files ORDER BY path")
}

func (s *Store) FilesByLanguage(language string) ([]*File, error) {
	return s.queryFiles(
		"SELECT id, path, language, hash, line_count, last_indexed FROM files WHERE language = ? ORDER BY path",
		language,
	)
}

func (s *Store) queryFiles(query string, args ...any) ([]*File, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.Hash, &f.LineCount, &f.LastIndexed); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// --- Function operations ---

// FunctionCols is the column list for function queries, shared with the
// transaction-scoped insert in commit.go and the QueryBuilder.
const FunctionCols = `id, file_id, name, kind, receiver, language, arguments, return_type,
	doc, modifiers, start_line, start_col, end_line, end_col, code, complexity, loc, comment_lines`

func (s *Store) InsertFunction(fn *Function) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO functions (file_id, name, kind, receiver, language, arguments, return_type,
			doc, modifiers, start_line, start_col, end_line, end_col, code, complexity, loc, comment_lines)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fn.FileID, fn.Name, fn.Kind, fn.Receiver, fn.Language, marshalStrings(fn.Arguments), fn.ReturnType,
		fn.Doc, marshalStrings(fn.Modifiers), fn.StartLine, fn.StartCol, fn.EndLine, fn.EndCol,
		fn.Code, fn.Complexity, fn.LOC, fn.CommentLines,
	)
	if err != nil {
		return 0, fmt.Errorf("insert function: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	fn.ID = id
	return id, nil
}

func (s *Store) scanFunction(scanner interface{ Scan(...any) error }) (*Function, error) {
	fn := &Function{}
	var args, mods string
	err := scanner.Scan(
		&fn.ID, &fn.FileID, &fn.Name, &fn.Kind, &fn.Receiver, &fn.Language, &args, &fn.ReturnType,
		&fn.Doc, &mods, &fn.StartLine, &fn.StartCol, &fn.EndLine, &fn.EndCol,
		&fn.Code, &fn.Complexity, &fn.LOC, &fn.CommentLines,
	)
	if err != nil {
		return nil, err
	}
	fn.Arguments = unmarshalStrings(args)
	fn.Modifiers = unmarshalStrings(mods)
	return fn, nil
}

func (s *Store) queryFunctions(query string, args ...any) ([]*Function, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var fns []*Function
	for rows.Next() {
		fn, err := s.scanFunction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan function: %w", err)
		}
		fns = append(fns, fn)
	}
	return fns, rows.Err()
}

func (s *Store) FunctionsByFile(fileID int64) ([]*Function, error) {
	return s.queryFunctions(
		"SELECT "+FunctionCols+" FROM functions WHERE file_id = ? ORDER BY start_line", fileID,
	)
}

func (s *Store) FunctionsByName(name string) ([]*Function, error) {
	return s.queryFunctions(
		"SELECT "+FunctionCols+" FROM functions WHERE name = ? ORDER BY id", name,
	)
}

func (s *Store) FunctionsByLanguage(language string) ([]*Function, error) {
	return s.queryFunctions(
		"SELECT "+FunctionCols+" FROM functions WHERE language = ? ORDER BY id", language,
	)
}

// LanguageStats aggregates per-language file and function counts plus the
// average cyclomatic complexity across extracted functions.
func (s *Store) LanguageStats() ([]*LanguageStat, error) {
	rows, err := s.db.Query(`
		SELECT f.language,
		       COUNT(DISTINCT f.id),
		       COUNT(fn.id),
		       COALESCE(AVG(fn.complexity), 0)
		FROM files f
		LEFT JOIN functions fn ON fn.file_id = f.id
		GROUP BY f.language
		ORDER BY f.language`)
	if err != nil {
		return nil, fmt.Errorf("language stats: %w", err)
	}
	defer rows.Close()
	var stats []*LanguageStat
	for rows.Next() {
		st := &LanguageStat{}
		if err := rows.Scan(&st.Language, &st.FileCount, &st.FunctionCount, &st.AvgComplexity); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
