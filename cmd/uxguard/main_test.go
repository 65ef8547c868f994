package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// testCommand points the globals at a scratch environment: no config file,
// no knowledge files (embedded base), telemetry in a temp dir, no API keys.
func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "absent.yaml")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("UXGUARD_KNOWLEDGE_DIR", t.TempDir())
	t.Setenv("UXGUARD_TELEMETRY_DB", filepath.Join(t.TempDir(), "telemetry.db"))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = wOut

	fn()

	wOut.Close()
	os.Stdout = origOut

	var buf bytes.Buffer
	io.Copy(&buf, rOut)
	return buf.String()
}

func TestRunAskNoMatch(t *testing.T) {
	cmd := testCommand(t)

	output := captureOutput(t, func() {
		if err := runAsk(cmd, []string{"quantum", "blockchain", "compiler"}); err != nil {
			t.Errorf("runAsk returned error: %v", err)
		}
	})

	if !strings.Contains(output, "No matching risks") {
		t.Fatalf("expected no-match message, got: %s", output)
	}
}

func TestRunAskCuratedAnswer(t *testing.T) {
	cmd := testCommand(t)

	output := captureOutput(t, func() {
		if err := runAsk(cmd, []string{"facial", "recognition", "bias"}); err != nil {
			t.Errorf("runAsk returned error: %v", err)
		}
	})

	if !strings.Contains(output, "EU AI Act:") {
		t.Fatalf("expected act tier line, got: %s", output)
	}
	if !strings.Contains(output, "Mitigations") {
		t.Fatalf("expected mitigations in briefing, got: %s", output)
	}
	if !strings.Contains(output, "not legal advice") {
		t.Fatalf("expected disclaimer, got: %s", output)
	}
}

func TestRunAskOutOfScopeWarning(t *testing.T) {
	cmd := testCommand(t)

	output := captureOutput(t, func() {
		if err := runAsk(cmd, []string{"medical", "diagnosis", "chatbot", "bias"}); err != nil {
			t.Errorf("runAsk returned error: %v", err)
		}
	})

	if !strings.Contains(output, "out of scope") {
		t.Fatalf("expected scope warning, got: %s", output)
	}
}

func TestRunPhase(t *testing.T) {
	cmd := testCommand(t)

	output := captureOutput(t, func() {
		if err := runPhase(cmd, []string{"create"}); err != nil {
			t.Errorf("runPhase returned error: %v", err)
		}
	})

	if !strings.Contains(output, "Phase: Create") {
		t.Fatalf("expected phase header, got: %s", output)
	}
}

func TestRunPhaseUnknown(t *testing.T) {
	cmd := testCommand(t)

	if err := runPhase(cmd, []string{"deploy"}); err == nil {
		t.Fatal("expected error for unknown phase")
	}
}

func TestRunExportWritesPDF(t *testing.T) {
	cmd := testCommand(t)
	out := filepath.Join(t.TempDir(), "briefing.pdf")
	exportOut = out
	defer func() { exportOut = "" }()

	captureOutput(t, func() {
		if err := runExport(cmd, []string{"dark", "patterns", "consent"}); err != nil {
			t.Errorf("runExport returned error: %v", err)
		}
	})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("export is not a PDF")
	}
}

func TestRunKBValidateEmbedded(t *testing.T) {
	cmd := testCommand(t)

	output := captureOutput(t, func() {
		if err := runKBValidate(cmd, nil); err != nil {
			t.Errorf("runKBValidate returned error: %v", err)
		}
	})

	if !strings.Contains(output, "embedded base") || !strings.Contains(output, "OK:") {
		t.Fatalf("unexpected validate output: %s", output)
	}
}

func TestRunKBListByPhase(t *testing.T) {
	cmd := testCommand(t)
	kbListPhase = "create"
	defer func() { kbListPhase = "" }()

	output := captureOutput(t, func() {
		if err := runKBList(cmd, nil); err != nil {
			t.Errorf("runKBList returned error: %v", err)
		}
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected header plus entries, got: %s", output)
	}
	for _, line := range lines[1:] {
		if !strings.Contains(line, "Create") {
			t.Fatalf("non-create entry in filtered list: %s", line)
		}
	}
}

func TestRunLogRecentEmpty(t *testing.T) {
	cmd := testCommand(t)

	output := captureOutput(t, func() {
		if err := runLogRecent(cmd, nil); err != nil {
			t.Errorf("runLogRecent returned error: %v", err)
		}
	})

	if !strings.Contains(output, "No queries logged yet") {
		t.Fatalf("expected empty-log message, got: %s", output)
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ask", "phase", "export", "serve", "kb", "log"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}
