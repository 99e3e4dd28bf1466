package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd.Execute(context.Background(), fs)
}

func TestLoanCommand(t *testing.T) {
	var buf bytes.Buffer
	status := run(t, &loanCmd{out: &buf}, "-amount", "5000", "-rate", "4.5", "-months", "12")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if !strings.Contains(buf.String(), "Monthly payment: $426.89") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestLoanCommandRejectsBadTerm(t *testing.T) {
	status := run(t, &loanCmd{out: &bytes.Buffer{}}, "-months", "0")
	if status != subcommands.ExitFailure {
		t.Fatalf("expected failure, got %v", status)
	}
}

func TestInsuranceCommandAnnual(t *testing.T) {
	var buf bytes.Buffer
	status := run(t, &insuranceCmd{out: &buf}, "-plan", "ins-2", "-frequency", "annual")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if !strings.Contains(buf.String(), "Total:    $539.89") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestInsuranceCommandUnknownPlan(t *testing.T) {
	status := run(t, &insuranceCmd{out: &bytes.Buffer{}}, "-plan", "ins-missing")
	if status != subcommands.ExitFailure {
		t.Fatalf("expected failure, got %v", status)
	}
}

func TestInvestCommand(t *testing.T) {
	var buf bytes.Buffer
	status := run(t, &investCmd{out: &buf}, "-project", "inv-1", "-amount", "1000")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if !strings.Contains(buf.String(), "Expected return: $85.00") || !strings.Contains(buf.String(), "People helped:   10") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestProjectsCommandFilters(t *testing.T) {
	var buf bytes.Buffer
	status := run(t, &projectsCmd{out: &buf}, "-risk", "low")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if !strings.Contains(buf.String(), "inv-2") || strings.Contains(buf.String(), "inv-1") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestProjectsCommandRejectsSortKey(t *testing.T) {
	status := run(t, &projectsCmd{out: &bytes.Buffer{}}, "-sort", "sideways")
	if status != subcommands.ExitUsageError {
		t.Fatalf("expected usage error, got %v", status)
	}
}
