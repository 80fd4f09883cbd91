// Package cli provides the command-line interface for bizhub.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bizhubhq/bizhub/internal/config"
	"github.com/bizhubhq/bizhub/internal/db"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and db client
	cfg      config.Config
	dbClient *db.Client

	// Lazy-initialized completion client
	completer llm.Completer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bizhub",
	Short: "Local business directory with an AI assistant",
	Long: `BizHub is a local business directory: search listings, browse categories,
submit new businesses (screened by AI moderation), and chat with an
assistant that can search the directory for you.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load config
		cfg = config.Load()

		// Connect to database
		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, nil)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		// Initialize schema
		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Close database connection
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// getCompleter lazily creates the completion client. Commands that talk to
// the assistant call this; directory-only commands never pay for it.
func getCompleter(ctx context.Context) (llm.Completer, error) {
	if completer == nil {
		var err error
		completer, err = llm.New(ctx, cfg, nil)
		if err != nil {
			return nil, fmt.Errorf("init completion client: %w", err)
		}
	}
	return completer, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
