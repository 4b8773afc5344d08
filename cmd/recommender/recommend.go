package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend assessments for a job description",
	Long:  "Recommend assessments for a job description given as a text file, a URL, or on stdin. Prints a ranked shortlist.",
	RunE:  runRecommend,
}

var (
	recConfigPath string
	recCatalog    string
	recJobFile    string
	recJobURL     string
	recJSON       bool
	recUseBrowser bool
	recVerbose    bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recConfigPath, "config", "c", "", "Path to JSON config file")
	recommendCmd.Flags().StringVar(&recCatalog, "catalog", "", "Path to catalog JSON file (overrides config)")
	recommendCmd.Flags().StringVarP(&recJobFile, "job", "j", "", "Path to text file containing the job description")
	recommendCmd.Flags().StringVarP(&recJobURL, "job-url", "u", "", "URL to fetch the job description from")
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "Print results as JSON instead of a table")
	recommendCmd.Flags().BoolVar(&recUseBrowser, "use-browser", false, "Use headless browser for SPA job postings")
	recommendCmd.Flags().BoolVarP(&recVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	if recJobFile != "" && recJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := loadConfig(recConfigPath)
	if err != nil {
		return err
	}
	if recCatalog != "" {
		cfg.Catalog = recCatalog
	}
	if recVerbose {
		cfg.Verbose = true
	}

	ctx := context.Background()

	jobDescription, err := readJobDescription(ctx)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := engine.Recommend(ctx, jobDescription)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if recJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No recommendations found. Please try a more detailed job description.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%2d. %s\n", i+1, r.Name)
		fmt.Fprintf(os.Stdout, "    %s\n", r.URL)
		fmt.Fprintf(os.Stdout, "    duration: %s  types: %s\n", r.Duration.String(), strings.Join(r.TestTypes, ", "))
	}
	return nil
}

// readJobDescription resolves the job text in priority order: file flag,
// URL flag, then stdin.
func readJobDescription(ctx context.Context) (string, error) {
	if recJobFile != "" {
		data, err := os.ReadFile(recJobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file: %w", err)
		}
		return string(data), nil
	}

	if recJobURL != "" {
		text, err := ingestion.IngestFromURL(ctx, recJobURL, recUseBrowser, recVerbose)
		if err != nil {
			return "", fmt.Errorf("failed to ingest job posting from URL: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read job description from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no job description provided (use --job, --job-url or stdin)")
	}
	return string(data), nil
}
