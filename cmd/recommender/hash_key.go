package main

import (
	"fmt"
	"os"

	"github.com/jonathan/assessment-recommender/internal/config"
	"github.com/spf13/cobra"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <key>",
	Short: "Hash an admin API key",
	Long:  "Hash an admin API key with bcrypt for use as the ADMIN_API_KEY_HASH environment variable.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashKey,
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}

func runHashKey(_ *cobra.Command, args []string) error {
	hash, err := config.HashKey(args[0])
	if err != nil {
		return fmt.Errorf("failed to hash key: %w", err)
	}

	fmt.Fprintln(os.Stdout, hash)
	return nil
}
