package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/assessment-recommender/internal/catalog"
	"github.com/spf13/cobra"
)

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog <path>",
	Short: "Validate a catalog JSON file",
	Long:  "Validate a catalog JSON file against the catalog schema and semantic rules (valid test types, unique names and URLs).",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateCatalog,
}

func init() {
	rootCmd.AddCommand(validateCatalogCmd)
}

func runValidateCatalog(_ *cobra.Command, args []string) error {
	source := &catalog.FileSource{Path: args[0]}

	snap, err := source.Load(context.Background())
	if err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Catalog is valid: %d assessments\n", snap.Len())
	return nil
}
