package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gobbc/config"
)

const model = `inputs: [A, B]
initial: s0
transitions:
  - {from: s0, input: A, output: X, to: s1}
  - {from: s0, input: B, output: Y, to: s0}
  - {from: s1, input: A, output: X, to: s1}
  - {from: s1, input: B, output: Z, to: s0}
`

// setupProblem writes a model and the formula file of problem 1 to a temp directory
func setupProblem(t *testing.T) (dir, modelPath string) {
	t.Helper()
	dir = t.TempDir()
	modelPath = filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(modelPath, []byte(model), 0644); err != nil {
		t.Fatalf("Failed to write model: %v", err)
	}
	formulas := "# never Z\n(false R ! oZ)\ntrue\n"
	if err := os.WriteFile(filepath.Join(dir, "constraints-Problem1.txt"), []byte(formulas), 0644); err != nil {
		t.Fatalf("Failed to write formulas: %v", err)
	}
	return dir, modelPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output = %q, want it to contain %q", out, version)
	}
}

func TestRunWritesRecords(t *testing.T) {
	dir, modelPath := setupProblem(t)
	out, err := execute(t, "run", "1", "ExtensibleLStar", "--formula-dir", dir, "--model", modelPath, "-M", "-r=false")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("run output has %d lines, want header and one record:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "problem,learner,aut,bbo,property,size") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,ExtensibleLStar,monitor,none,0,2,") {
		t.Errorf("record = %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ",2") {
		t.Errorf("record = %q, want counterexample length 2", lines[1])
	}
}

func TestRunRejectsExclusiveStrategies(t *testing.T) {
	dir, modelPath := setupProblem(t)
	out, err := execute(t, "run", "1", "ExtensibleLStar", "--formula-dir", dir, "--model", modelPath, "-M", "-D", "-C")
	if !errors.Is(err, config.ExclusiveStrategiesError) {
		t.Errorf("run error = %v, want %v", err, config.ExclusiveStrategiesError)
	}
	if out != "" {
		t.Errorf("run wrote %q, want no output", out)
	}
}

func TestRunRejectsInvalidProblem(t *testing.T) {
	if _, err := execute(t, "run", "one", "ExtensibleLStar", "-M"); err == nil {
		t.Error("expected an error for a non-numeric problem")
	}
}

func TestFormulas(t *testing.T) {
	dir, _ := setupProblem(t)
	out, err := execute(t, "formulas", "1", "--formula-dir", dir)
	if err != nil {
		t.Fatalf("formulas failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("formulas printed %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "0\t") || !strings.HasPrefix(lines[1], "1\t") {
		t.Errorf("formulas output = %q", out)
	}
}

func TestConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bbc.yaml")
	data := "checking:\n  monitor: true\n  multiplier: 2.5\nequivalence:\n  timeout: 60\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	cmd := newRunCmd()
	if err := cmd.Flags().Parse([]string{"-t", "10"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	applyRunFlags(cmd, cfg)
	if cfg.Equivalence.Timeout != 10 {
		t.Errorf("Timeout = %d, want 10", cfg.Equivalence.Timeout)
	}
	if cfg.Checking.Multiplier != 2.5 {
		t.Errorf("Multiplier = %f, want 2.5", cfg.Checking.Multiplier)
	}
	if !cfg.Checking.Monitor {
		t.Error("Monitor should be kept from the file")
	}
}
