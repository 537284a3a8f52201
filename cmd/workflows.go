package cmd

import (
	"fmt"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/spf13/cobra"
)

var (
	workflowName        string
	workflowDescription string
	workflowSteps       string
)

// workflowsCmd represents the workflows command
var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List pre-approved remediation workflows",
	Long: `List the remediation workflows registered for your user. These are the
actions CloudWhisper may recommend when it diagnoses an issue.`,
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

		workflows, err := store.ListWorkflows(cmd.Context(), cfg.UserID)
		if err != nil {
			return fmt.Errorf("failed to list workflows: %w", err)
		}

		if len(workflows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No workflows registered. Add one with 'cloudwhisper workflows add'.")
			return nil
		}

		for _, wf := range workflows {
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(wf.Name))
			fmt.Fprintln(cmd.OutOrStdout(), "  "+wf.Description)
			if wf.Steps != "" {
				fmt.Fprintln(cmd.OutOrStdout(), dateStyle.Render("  steps: "+wf.Steps))
			}
		}
		return nil
	},
}

// workflowsAddCmd registers a new workflow
var workflowsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a remediation workflow",
	RunE: func(cmd *cobra.Command, args []string) error {
		if workflowName == "" {
			return fmt.Errorf("--name is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		wf := &internal.Workflow{
			UserID:      cfg.UserID,
			Name:        workflowName,
			Description: workflowDescription,
			Steps:       workflowSteps,
		}
		if err := store.SaveWorkflow(cmd.Context(), wf); err != nil {
			return fmt.Errorf("failed to save workflow: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered workflow %s (%s)\n", wf.Name, wf.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workflowsCmd)
	workflowsCmd.AddCommand(workflowsAddCmd)
	workflowsAddCmd.Flags().StringVar(&workflowName, "name", "", "Workflow name")
	workflowsAddCmd.Flags().StringVar(&workflowDescription, "description", "", "What the workflow does")
	workflowsAddCmd.Flags().StringVar(&workflowSteps, "steps", "", "Steps the workflow executes")
}
