package cmd

import (
	"fmt"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var showFollow bool

var (
	// Styles for show command
	conversationHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	conversationMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show the transcript of a conversation",
	Long: `Display the messages of one conversation in order.

With --follow the command keeps the transcript open and prints new messages
as they are recorded, which is useful alongside an active chat session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		conv, err := store.GetConversation(ctx, conversationID)
		if err != nil {
			return fmt.Errorf("conversation %s not found: %w", conversationID, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), conversationHeaderStyle.Render(conv.Title))
		started := ""
		if t := conv.GetStartTime(); !t.IsZero() {
			started = t.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintln(cmd.OutOrStdout(), conversationMetaStyle.Render(fmt.Sprintf("id: %s  started: %s", conv.ID, started)))

		if showFollow {
			stream, err := store.StreamMessages(ctx, conversationID)
			if err != nil {
				return fmt.Errorf("failed to stream messages: %w", err)
			}
			for msg := range stream {
				printMessage(cmd, msg)
			}
			return nil
		}

		messages, err := store.Messages(ctx, conversationID)
		if err != nil {
			return fmt.Errorf("failed to load messages: %w", err)
		}
		for _, msg := range messages {
			printMessage(cmd, msg)
		}
		return nil
	},
}

func printMessage(cmd *cobra.Command, msg *internal.Message) {
	style := userMessageStyle
	if msg.Sender == internal.SenderAssistant {
		style = assistantMessageStyle
	}

	ts := timestampStyle.Render(msg.GetTimestamp().Local().Format("15:04:05"))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Render(msg.Sender), ts)
	fmt.Fprintln(cmd.OutOrStdout(), messageContentStyle.Render(msg.Text))
	if msg.ImageURI != "" {
		fmt.Fprintln(cmd.OutOrStdout(), messageContentStyle.Render("[attached screenshot]"))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVarP(&showFollow, "follow", "f", false, "Keep the transcript open and print new messages as they arrive")
}
