package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/aqsawaikar-droid/CloudWhisper/testutil"
)

func TestWorkflowsCommand_Empty(t *testing.T) {
	dbPath := testutil.CreateTempDatabase(t)

	out, err := runCommand(t, dbPath, "workflows")
	if err != nil {
		t.Fatalf("workflows error = %v", err)
	}
	if !strings.Contains(out, "No workflows registered") {
		t.Errorf("workflows output = %q, want the empty notice", out)
	}
}

func TestWorkflowsCommand_AddAndList(t *testing.T) {
	dbPath := testutil.CreateTempDatabase(t)

	out, err := runCommand(t, dbPath, "workflows", "add",
		"--name", "restart-api",
		"--description", "Restart the API deployment",
		"--steps", "kubectl rollout restart deployment/api")
	if err != nil {
		t.Fatalf("workflows add error = %v", err)
	}
	if !strings.Contains(out, "Registered workflow restart-api") {
		t.Errorf("workflows add output = %q, want registration confirmation", out)
	}

	out, err = runCommand(t, dbPath, "workflows")
	if err != nil {
		t.Fatalf("workflows error = %v", err)
	}
	if !strings.Contains(out, "restart-api") {
		t.Errorf("workflows output = %q, want the registered workflow", out)
	}
	if !strings.Contains(out, "Restart the API deployment") {
		t.Errorf("workflows output = %q, want the workflow description", out)
	}
}

func TestWorkflowsCommand_AddRequiresName(t *testing.T) {
	dbPath := testutil.CreateTempDatabase(t)

	if _, err := runCommand(t, dbPath, "workflows", "add", "--name", ""); err == nil {
		t.Error("workflows add without --name succeeded, want error")
	}
}

func TestWorkflowsCommand_ScopedToUser(t *testing.T) {
	dbPath, store := seedTempStore(t)

	wf := &internal.Workflow{
		UserID:      "other-user",
		Name:        "someone-elses-workflow",
		Description: "Not visible to test-user",
	}
	if err := store.SaveWorkflow(context.Background(), wf); err != nil {
		t.Fatalf("Failed to seed workflow: %v", err)
	}

	out, err := runCommand(t, dbPath, "workflows")
	if err != nil {
		t.Fatalf("workflows error = %v", err)
	}
	if strings.Contains(out, "someone-elses-workflow") {
		t.Errorf("workflows output = %q, must not show another user's workflows", out)
	}
}
