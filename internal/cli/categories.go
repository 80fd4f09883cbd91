package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizhubhq/bizhub/internal/db"
	"github.com/bizhubhq/bizhub/internal/models"
	"github.com/spf13/cobra"
)

var categoriesSeed bool

// defaultCategories is the starter set for a fresh directory.
var defaultCategories = []models.Category{
	{Name: "Food & Dining", Icon: "🍽️"},
	{Name: "Home Services", Icon: "🏠"},
	{Name: "Healthcare", Icon: "⚕️"},
	{Name: "Education", Icon: "🎓"},
	{Name: "Retail", Icon: "🛍️"},
	{Name: "Professional Services", Icon: "💼"},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List directory categories",
	Long: `List the directory categories in display order.

With --seed, the default category set is inserted first; categories that
already exist are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesSeed, "seed", false, "insert the default categories first")
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if categoriesSeed {
		for i, c := range defaultCategories {
			err := dbClient.InsertCategory(ctx, c.Name, c.Icon, i+1)
			if err != nil && !errors.Is(err, db.ErrAlreadyExists) {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
	}

	cats, err := dbClient.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	if len(cats) == 0 {
		fmt.Println("No categories yet. Run 'bizhub categories --seed' to add the defaults.")
		return nil
	}

	for _, c := range cats {
		if c.Icon != "" {
			fmt.Printf("%s  %s\n", c.Icon, c.Name)
		} else {
			fmt.Println(c.Name)
		}
	}
	return nil
}
