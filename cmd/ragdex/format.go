package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// formatFunctionsText formats CLIFunction results as aligned columns.
func formatFunctionsText(w io.Writer, fns []CLIFunction) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tLANGUAGE\tFILE\tLINE\tCOMPLEXITY")
	for _, f := range fns {
		name := f.Name
		if f.Receiver != "" {
			name = f.Receiver + "." + f.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			f.ID, name, f.Kind, f.Language, f.File, f.StartLine, f.Complexity)
	}
	tw.Flush()
}

// formatFilesText formats CLIFile results as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tLANGUAGE\tLINES")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", f.ID, f.Path, f.Language, f.Lines)
	}
	tw.Flush()
}

// formatStatsText formats CLIStat results as aligned columns.
func formatStatsText(w io.Writer, stats []CLIStat) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tFILES\tFUNCTIONS\tAVG COMPLEXITY")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", s.Language, s.FileCount, s.FunctionCount, s.AvgComplexity)
	}
	tw.Flush()
}

// outputResult writes the result in the selected --format.
func outputResult(result CLIResult) error {
	if flagFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	w := io.Writer(os.Stdout)
	switch v := result.Results.(type) {
	case []CLIFunction:
		formatFunctionsText(w, v)
	case []CLIFile:
		formatFilesText(w, v)
	case []CLIStat:
		formatStatsText(w, v)
	case nil:
		// No output for empty results.
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
