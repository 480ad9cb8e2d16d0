package store

import "fmt"

// CommitBatch inserts all buffered functions from a BatchedStore into SQLite
// within a single transaction. Fake (negative) IDs are replaced with real
// AUTOINCREMENT IDs as rows are written.
func (s *Store) CommitBatch(batch *BatchedStore) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("commit batch: begin: %w", err)
	}
	defer tx.Rollback()

	for _, fn := range batch.Functions {
		res, err := tx.Exec(
			`INSERT INTO functions (file_id, name, kind, receiver, language, arguments, return_type,
				doc, modifiers, start_line, start_col, end_line, end_col, code, complexity, loc, comment_lines)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fn.FileID, fn.Name, fn.Kind, fn.Receiver, fn.Language, marshalStrings(fn.Arguments), fn.ReturnType,
			fn.Doc, marshalStrings(fn.Modifiers), fn.StartLine, fn.StartCol, fn.EndLine, fn.EndCol,
			fn.Code, fn.Complexity, fn.LOC, fn.CommentLines,
		)
		if err != nil {
			return fmt.Errorf("commit batch: function %q: %w", fn.Name, err)
		}
		if _, err := res.LastInsertId(); err != nil {
			return fmt.Errorf("commit batch: last insert id: %w", err)
		}
	}

	return tx.Commit()
}
