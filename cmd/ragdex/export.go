package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkondo/ragdex"
)

var (
	flagOut        string
	flagCollection string
	flagMaxLength  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed functions as JSONL chunks",
	Long:  "Writes one JSON object per line for every indexed function, ready for an embedding pipeline. Each chunk carries the doc comment and source text.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&flagCollection, "collection", "", "collection name stamped on each chunk")
	exportCmd.Flags().IntVar(&flagMaxLength, "max-length", 0, "truncate chunk text to this many runes (0 = unlimited)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := ragdex.ExportOptions{
		Collection: flagCollection,
		MaxLength:  flagMaxLength,
	}
	if cfg != nil {
		if opts.Collection == "" {
			opts.Collection = cfg.Qdrant.CollectionName
		}
		if opts.MaxLength == 0 {
			opts.MaxLength = cfg.Embedding.MaxLength
		}
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	out := os.Stdout
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagOut, err)
		}
		defer f.Close()
		out = f
	}

	count, err := engine.Export(out, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d chunks\n", count)
	return nil
}
