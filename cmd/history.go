package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var historyLimit int

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversations",
	Long:  `List your past conversations with CloudWhisper, most recent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		conversations, err := store.ListConversations(cmd.Context(), cfg.UserID)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		if len(conversations) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversation history yet. Start one with 'cloudwhisper chat'.")
			return nil
		}

		if historyLimit > 0 && len(conversations) > historyLimit {
			conversations = conversations[:historyLimit]
		}

		fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(fmt.Sprintf("Conversations (%d)", len(conversations))))
		fmt.Fprintln(cmd.OutOrStdout())

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, conv := range conversations {
			started := ""
			if t := conv.GetStartTime(); !t.IsZero() {
				started = t.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				titleStyle.Render(conv.Title),
				dateStyle.Render(started),
				idStyle.Render(conv.ID))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show at most this many conversations (0 = all)")
}
