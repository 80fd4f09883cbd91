package cli

import (
	"context"
	"fmt"

	"github.com/bizhubhq/bizhub/internal/db"
	"github.com/spf13/cobra"
)

var findLimit int

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search the business directory",
	Long: `Search the business directory by name or description.

Matching is case-insensitive substring matching.

Examples:
  bizhub find pizza
  bizhub find "auto repair" -n 10`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", db.DefaultSearchLimit, "max results")
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	results, err := dbClient.SearchBusinesses(ctx, args[0], findLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No businesses found matching that query.")
		return nil
	}

	for _, b := range results {
		fmt.Printf("%s", b.Name)
		if b.Category != "" {
			fmt.Printf("  [%s]", b.Category)
		}
		fmt.Println()
		if b.Description != "" {
			fmt.Printf("    %s\n", b.Description)
		}
		if b.Address != "" {
			fmt.Printf("    %s", b.Address)
			if b.Phone != "" {
				fmt.Printf("  ·  %s", b.Phone)
			}
			fmt.Println()
		} else if b.Phone != "" {
			fmt.Printf("    %s\n", b.Phone)
		}
	}
	return nil
}
