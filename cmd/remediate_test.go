package cmd

import (
	"strings"
	"testing"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/aqsawaikar-droid/CloudWhisper/testutil"
)

func TestRemediateCommand_RequiresIssue(t *testing.T) {
	dbPath := testutil.CreateTempDatabase(t)

	if _, err := runCommand(t, dbPath, "remediate", "--issue", ""); err == nil {
		t.Error("remediate without --issue succeeded, want error")
	}
}

func TestRemediateCommand_RejectsBadSeverity(t *testing.T) {
	dbPath := testutil.CreateTempDatabase(t)

	_, err := runCommand(t, dbPath, "remediate",
		"--issue", "database connections dropping", "--severity", "CRITICAL")
	if err == nil {
		t.Error("remediate with invalid severity succeeded, want error")
	}
}

func TestWorkflowContext(t *testing.T) {
	if got := workflowContext(nil); got != "(none registered)" {
		t.Errorf("workflowContext(nil) = %q, want the empty-registry marker", got)
	}

	workflows := []*internal.Workflow{
		{Name: "restart-api", Description: "Restart the API deployment", Steps: "kubectl rollout restart deployment/api"},
		{Name: "scale-db", Description: "Add a database read replica"},
	}
	got := workflowContext(workflows)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("workflowContext() produced %d lines, want one per workflow (2)", len(lines))
	}
	if lines[0] != "- restart-api: Restart the API deployment (steps: kubectl rollout restart deployment/api)" {
		t.Errorf("Line 1 = %q", lines[0])
	}
	if lines[1] != "- scale-db: Add a database read replica" {
		t.Errorf("Line 2 = %q", lines[1])
	}
}
