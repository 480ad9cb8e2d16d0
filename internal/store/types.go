package store

import "time"

// File is one indexed source file.
type File struct {
	ID          int64
	Path        string
	Language    string
	Hash        string
	LineCount   int
	LastIndexed time.Time
}

// Function is one extracted function, method, or constructor.
//
// Line numbers are 1-based, columns 0-based (tree-sitter convention).
// Arguments holds parameter names in declaration order; Modifiers holds
// language-level modifiers such as "pub" or "static".
type Function struct {
	ID           int64
	FileID       int64
	Name         string
	Kind         string // function | method | constructor
	Receiver     string // receiver or owning type, "" for free functions
	Language     string
	Arguments    []string
	ReturnType   string
	Doc          string
	Modifiers    []string
	StartLine    int
	StartCol     int
	EndLine      int
	EndCol       int
	Code         string
	Complexity   int
	LOC          int
	CommentLines int
}

// LanguageStat summarises indexed content for one language.
type LanguageStat struct {
	Language      string
	FileCount     int
	FunctionCount int
	AvgComplexity float64
}
