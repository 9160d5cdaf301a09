package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BIOGRAPHY_DATA", "")
	t.Chdir(t.TempDir())

	dumpLang, dumpView, dumpRaw, dataPath = "zh", "", false, ""
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateEmbedded(t *testing.T) {
	out, err := execute(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.HasPrefix(out, "ok: 林志遠 / Chih-Yuan Lin") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDumpResolvesLocale(t *testing.T) {
	out, err := execute(t, "dump", "--lang", "en")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	var vm struct {
		Locale   string `json:"locale"`
		Personal struct {
			Name string `json:"name"`
		} `json:"personal"`
	}
	if err := json.Unmarshal([]byte(out), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.Locale != "en" || vm.Personal.Name != "Chih-Yuan Lin" {
		t.Fatalf("unexpected dump %+v", vm)
	}
}

func TestDumpComposedView(t *testing.T) {
	out, err := execute(t, "dump", "--lang", "en", "--view", "resume")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, `"CoreSkills"`) {
		t.Fatalf("expected composed resume, got %s", out)
	}
}

func TestDumpRejectsUnsupportedLocale(t *testing.T) {
	if _, err := execute(t, "dump", "--lang", "fr"); err == nil {
		t.Fatal("expected error for unsupported locale")
	}
	if _, err := execute(t, "dump", "--view", "slides"); err == nil {
		t.Fatal("expected error for unknown view")
	}
}

func TestGateCheck(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("GATE_ENABLED", "true")
	t.Setenv("GATE_SECRET", "qpwoeiruty")

	out, err := execute(t, "gate", "check", "qpwoeiruty")
	if err != nil || !strings.Contains(out, "password accepted") {
		t.Fatalf("expected acceptance, got %q %v", out, err)
	}
	if _, err := execute(t, "gate", "check", "nope"); err == nil {
		t.Fatal("expected rejection")
	}

	t.Setenv("GATE_ENABLED", "false")
	out, err = execute(t, "gate", "check", "nope")
	if err != nil || !strings.Contains(out, "gate disabled") {
		t.Fatalf("expected disabled report, got %q %v", out, err)
	}
}
