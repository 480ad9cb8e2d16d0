package main

// CLIResult is the top-level JSON envelope for all query commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
}

// CLIFunction is a JSON-friendly function record.
type CLIFunction struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Receiver   string   `json:"receiver,omitempty"`
	Language   string   `json:"language"`
	File       string   `json:"file,omitempty"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	Arguments  []string `json:"arguments,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
	Complexity int      `json:"complexity"`
	LOC        int      `json:"loc"`
}

// CLIFile is a JSON-friendly file representation.
type CLIFile struct {
	ID       int64  `json:"id"`
	Path     string `json:"path"`
	Language string `json:"language"`
	Lines    int    `json:"lines"`
}

// CLIStat is a JSON-friendly per-language summary.
type CLIStat struct {
	Language      string  `json:"language"`
	FileCount     int     `json:"file_count"`
	FunctionCount int     `json:"function_count"`
	AvgComplexity float64 `json:"avg_complexity"`
}
