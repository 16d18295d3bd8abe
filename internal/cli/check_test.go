package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunCheckAcyclic(t *testing.T) {
	var buf bytes.Buffer
	path := writeManifest(t, chainManifest)
	if err := runCheck(quietCtx(t), &buf, path); err != nil {
		t.Fatalf("runCheck error: %v", err)
	}
	if !strings.Contains(buf.String(), "acyclic") {
		t.Errorf("output %q should report the manifest as acyclic", buf.String())
	}
	if !strings.Contains(buf.String(), path) {
		t.Errorf("output %q should name the manifest", buf.String())
	}
}

func TestRunCheckCycle(t *testing.T) {
	var buf bytes.Buffer
	path := writeManifest(t, "[deps]\na = [\"b\"]\nb = [\"a\"]\n")
	err := runCheck(quietCtx(t), &buf, path)
	if err == nil {
		t.Fatal("runCheck should fail for a cyclic manifest")
	}
	if !strings.Contains(buf.String(), "cycle") {
		t.Errorf("output %q should mention the cycle", buf.String())
	}
}

func TestRunCheckMissingManifest(t *testing.T) {
	var buf bytes.Buffer
	if err := runCheck(quietCtx(t), &buf, "absent.toml"); err == nil {
		t.Error("runCheck should fail for a missing manifest")
	}
}
