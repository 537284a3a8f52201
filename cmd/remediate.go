package cmd

import (
	"fmt"
	"strings"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/spf13/cobra"
)

var (
	remediateIssue      string
	remediateSeverity   string
	remediateConfidence float64
	remediateDemo       bool
	remediateSummary    bool
)

// remediateCmd represents the remediate command
var remediateCmd = &cobra.Command{
	Use:   "remediate",
	Short: "Recommend a pre-approved remediation workflow for an issue",
	Long: `Ask CloudWhisper to pick a remediation workflow for a diagnosed issue.

The recommendation considers the issue description, its severity and the
diagnosis confidence, together with the workflows registered for your user
(see 'cloudwhisper workflows'). High-severity actions are flagged as
requiring operator confirmation. With --summary the command also produces a
short approval summary suitable for pasting into an incident channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if remediateIssue == "" {
			return fmt.Errorf("--issue is required")
		}
		severity := strings.ToUpper(remediateSeverity)
		switch severity {
		case "LOW", "MEDIUM", "HIGH":
		default:
			return fmt.Errorf("invalid severity %q (expected LOW, MEDIUM or HIGH)", remediateSeverity)
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

		ctx := cmd.Context()
		gemini, err := internal.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to initialize AI backend: %w", err)
		}
		defer func() {
			if err := gemini.Close(); err != nil {
				internal.LogWarn("Failed to close AI client: %v", err)
			}
		}()

		workflows, err := store.ListWorkflows(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("failed to list workflows: %w", err)
		}
		if len(workflows) == 0 {
			internal.LogWarn("No workflows registered; the recommendation will not name a pre-approved action")
		}

		req := internal.RemediationRequest{
			Issue:                remediateIssue,
			Severity:             severity,
			Confidence:           remediateConfidence,
			Workflows:            workflowContext(workflows),
			RequiresConfirmation: severity == "HIGH",
		}
		if remediateDemo {
			req.Logs = internal.SampleLogs
			req.Metrics = internal.SampleMetrics
		}

		var result *internal.RemediationResult
		err = internal.ShowProgress(ctx, "Selecting a remediation workflow...", func() error {
			var recErr error
			result, recErr = gemini.RecommendWorkflow(ctx, req)
			return recErr
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("Recommended action"))
		fmt.Fprintln(out, "  "+result.RecommendedAction)
		fmt.Fprintln(out, titleStyle.Render("Reasoning"))
		fmt.Fprintln(out, "  "+result.Reasoning)
		if req.RequiresConfirmation {
			fmt.Fprintln(out, noticeStyle.Render("High severity: operator confirmation required before execution."))
		}

		if !remediateSummary {
			return nil
		}

		summary, err := gemini.SummarizeForApproval(ctx, internal.ApprovalRequest{
			Issue:             remediateIssue,
			Severity:          severity,
			Confidence:        remediateConfidence,
			RecommendedAction: result.RecommendedAction,
			Reasoning:         result.Reasoning,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render("Approval summary"))
		fmt.Fprintln(out, "  "+summary)
		return nil
	},
}

// workflowContext renders the registered workflows for the remediation
// prompt, one per line.
func workflowContext(workflows []*internal.Workflow) string {
	if len(workflows) == 0 {
		return "(none registered)"
	}
	var b strings.Builder
	for _, wf := range workflows {
		b.WriteString("- " + wf.Name + ": " + wf.Description)
		if wf.Steps != "" {
			b.WriteString(" (steps: " + wf.Steps + ")")
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func init() {
	rootCmd.AddCommand(remediateCmd)
	remediateCmd.Flags().StringVar(&remediateIssue, "issue", "", "Description of the diagnosed issue")
	remediateCmd.Flags().StringVar(&remediateSeverity, "severity", "MEDIUM", "Issue severity: LOW, MEDIUM or HIGH")
	remediateCmd.Flags().Float64Var(&remediateConfidence, "confidence", 0.8, "Diagnosis confidence between 0 and 1")
	remediateCmd.Flags().BoolVar(&remediateDemo, "demo", false, "Feed canned sample logs and metrics to the recommendation")
	remediateCmd.Flags().BoolVar(&remediateSummary, "summary", false, "Also produce an approval summary")
}
