package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check configuration, conversation database, and AI backend",
	Long: `Check the health of cloudwhisper by verifying:
  • Configuration loading
  • API key presence
  • Conversation database accessibility
  • Conversation count

This command is useful for debugging setup issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("CloudWhisper Health Check"))
		fmt.Fprintln(out)

		// Step 1: configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("Failed to load configuration:"), err)
			return err
		}
		fmt.Fprintln(out, successStyle.Render("Configuration loaded"))
		if verbose {
			fmt.Fprintf(out, "   Model: %s\n", cfg.Model)
			fmt.Fprintf(out, "   Database: %s\n", cfg.DatabasePath)
			fmt.Fprintf(out, "   User: %s\n", cfg.UserID)
		}
		fmt.Fprintln(out)

		// Step 2: API key
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking API key..."))
		if cfg.APIKey == "" {
			fmt.Fprintln(out, warningStyle.Render("No API key configured (set GOOGLE_API_KEY); chat will not work"))
		} else {
			fmt.Fprintln(out, successStyle.Render("API key present"))
		}
		fmt.Fprintln(out)

		// Step 3: database
		fmt.Fprintln(out, infoStyle.Render("Step 3: Opening conversation database..."))
		store, cleanup, err := openStore(cfg)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("Failed to open database:"), err)
			return err
		}
		defer cleanup()
		fmt.Fprintln(out, successStyle.Render("Database reachable"))
		fmt.Fprintln(out)

		// Step 4: conversation count
		fmt.Fprintln(out, infoStyle.Render("Step 4: Counting conversations..."))
		conversations, err := store.ListConversations(cmd.Context(), cfg.UserID)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("Failed to list conversations:"), err)
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Found %d conversation(s)", len(conversations))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
