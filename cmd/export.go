package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/aqsawaikar-droid/CloudWhisper/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat         string
	exportOutputDir      string
	exportConversationID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversation transcripts to file",
	Long: `Export conversation transcripts to various formats (jsonl, md, yaml, json).

You can export all conversations or a specific one by id.
Use 'cloudwhisper history' to see available conversation ids.`,
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

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(exportOutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		ctx := cmd.Context()
		var conversations []*internal.Conversation
		if exportConversationID != "" {
			conv, err := store.GetConversation(ctx, exportConversationID)
			if err != nil {
				return fmt.Errorf("conversation %s not found: %w", exportConversationID, err)
			}
			conversations = []*internal.Conversation{conv}
		} else {
			conversations, err = store.ListConversations(ctx, cfg.UserID)
			if err != nil {
				return fmt.Errorf("failed to list conversations: %w", err)
			}
		}

		if len(conversations) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversations to export.")
			return nil
		}

		exported := 0
		for _, conv := range conversations {
			messages, err := store.Messages(ctx, conv.ID)
			if err != nil {
				internal.LogWarn("Skipping conversation %s: %v", conv.ID, err)
				continue
			}

			path := filepath.Join(exportOutputDir, fmt.Sprintf("conversation_%s.%s", conv.ID, exporter.Extension()))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}

			transcript := &internal.Transcript{Conversation: conv, Messages: messages}
			if err := exporter.Export(transcript, f); err != nil {
				f.Close()
				return fmt.Errorf("failed to export conversation %s: %w", conv.ID, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", path, err)
			}
			exported++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversation(s) to %s\n", exported, exportOutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: jsonl, md, yaml, json")
	exportCmd.Flags().StringVarP(&exportOutputDir, "output", "o", ".", "Output directory")
	exportCmd.Flags().StringVar(&exportConversationID, "conversation", "", "Export a single conversation by id")
}
