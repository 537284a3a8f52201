package cmd

import (
	"fmt"
	"os"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	dbPath     string
	userID     string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cloudwhisper",
	Short: "Conversational SRE assistant for diagnosing infrastructure issues",
	Long: `CloudWhisper is a conversational front end for infrastructure diagnosis.

Describe a production problem in text, attach a screenshot, or dictate it
through the microphone; CloudWhisper correlates your input with diagnostic
context and replies with a root-cause analysis and a remediation suggestion.
Every exchange is recorded in a local conversation history.

Quick Start:
  cloudwhisper chat                      # Start a new conversation
  cloudwhisper history                   # List past conversations
  cloudwhisper show <conversation-id>    # Review a transcript
  cloudwhisper export --format md        # Export transcripts as Markdown

Configuration lives in ~/.cloudwhisper.yaml; the GOOGLE_API_KEY environment
variable overrides the api_key entry.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file location")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Custom conversation database location")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User id owning the conversations")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves the effective configuration from the config file and
// the root flags.
func loadConfig() (*internal.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if userID != "" {
		cfg.UserID = userID
	}
	return cfg, nil
}

// openStore opens the conversation database named by the config.
func openStore(cfg *internal.Config) (*internal.SQLiteStore, func(), error) {
	db, err := internal.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open conversation database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			internal.LogWarn("Failed to close database: %v", err)
		}
	}
	return internal.NewSQLiteStore(db), cleanup, nil
}
