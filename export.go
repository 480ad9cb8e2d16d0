package ragdex

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExportOptions controls chunk export.
type ExportOptions struct {
	// Collection is stamped on every chunk so the downstream loader knows
	// which Qdrant collection to upsert into. Optional.
	Collection string
	// MaxLength truncates the chunk text to at most this many runes.
	// Zero means no truncation.
	MaxLength int
}

// Chunk is one JSONL export record: a function plus the text payload the
// embedding pipeline consumes.
type Chunk struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Receiver   string   `json:"receiver,omitempty"`
	Language   string   `json:"language"`
	FilePath   string   `json:"file_path"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	Arguments  []string `json:"arguments,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
	Complexity int      `json:"complexity"`
	Collection string   `json:"collection,omitempty"`
	Text       string   `json:"text"`
}

// Export writes one JSON chunk per line for every indexed function.
// Returns the number of chunks written.
func (e *Engine) Export(w io.Writer, opts ExportOptions) (int, error) {
	files, err := e.store.Files()
	if err != nil {
		return 0, fmt.Errorf("ragdex: export: %w", err)
	}

	enc := json.NewEncoder(w)
	count := 0
	for _, f := range files {
		fns, err := e.store.FunctionsByFile(f.ID)
		if err != nil {
			return count, fmt.Errorf("ragdex: export %s: %w", f.Path, err)
		}
		for _, fn := range fns {
			chunk := Chunk{
				ID:         fn.ID,
				Name:       fn.Name,
				Kind:       fn.Kind,
				Receiver:   fn.Receiver,
				Language:   fn.Language,
				FilePath:   f.Path,
				StartLine:  fn.StartLine,
				EndLine:    fn.EndLine,
				Arguments:  fn.Arguments,
				ReturnType: fn.ReturnType,
				Complexity: fn.Complexity,
				Collection: opts.Collection,
				Text:       chunkText(fn.Doc, fn.Code, opts.MaxLength),
			}
			if err := enc.Encode(chunk); err != nil {
				return count, fmt.Errorf("ragdex: encode chunk: %w", err)
			}
			count++
		}
	}
	return count, nil
}

// chunkText assembles the embedding payload: doc comment above the code,
// truncated to maxLength runes when set.
func chunkText(doc, code string, maxLength int) string {
	text := code
	if doc != "" {
		text = doc + "\n\n" + code
	}
	if maxLength > 0 {
		runes := []rune(text)
		if len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}
	return strings.TrimSpace(text)
}
