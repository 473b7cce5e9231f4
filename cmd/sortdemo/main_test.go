package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/pprof/profile"

	"gosylib/pkg/profiler"
	"gosylib/pkg/sysy"
)

func TestProgram(t *testing.T) {
	var out, diag bytes.Buffer

	code, err := sysy.Run(program,
		sysy.WithInput(strings.NewReader("6\n9 -1 4 4 0 7\n")),
		sysy.WithOutput(&out),
		sysy.WithDiagnostics(&diag),
		sysy.WithPairing(profiler.PairInnermost),
	)
	if err != nil {
		t.Fatalf("program failed: %v", err)
	}
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}

	want := "-1 0 4 4 7 9\nsorted 6 numbers\n"
	if out.String() != want {
		t.Errorf("Expected output %q, got %q", want, out.String())
	}
	if !strings.HasPrefix(diag.String(), "Timer@0004-0006: ") {
		t.Errorf("Expected timer report on diagnostics, got %q", diag.String())
	}
}

func TestProgramTooManyElements(t *testing.T) {
	var out, diag bytes.Buffer

	code, err := sysy.Run(program,
		sysy.WithInput(strings.NewReader("2000")),
		sysy.WithOutput(&out),
		sysy.WithDiagnostics(&diag),
	)
	if err == nil {
		t.Fatal("Expected an error for an oversized array")
	}
	if code != sysy.ExitFailure {
		t.Errorf("Expected exit code %d, got %d", sysy.ExitFailure, code)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestRunWritesProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sort.pprof")
	var out, diag bytes.Buffer

	code := run([]string{"-pprof", path, "-log-level", "debug"}, strings.NewReader("3 3 1 2"), &out, &diag)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (diagnostics %q)", code, diag.String())
	}
	if out.String() != "1 2 3\nsorted 3 numbers\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
	if !strings.Contains(diag.String(), "array sorted") {
		t.Errorf("Expected debug log on diagnostics, got %q", diag.String())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open profile: %v", err)
	}
	defer f.Close()
	prof, err := profile.Parse(f)
	if err != nil {
		t.Fatalf("Profile file is incomplete: %v", err)
	}
	if len(prof.Sample) != 1 || prof.Function[0].Filename != "sortdemo.sy" {
		t.Errorf("Unexpected profile: %v", prof)
	}
}

func TestRunFailureExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sort.pprof")
	var out, diag bytes.Buffer

	code := run([]string{"-pprof", path}, strings.NewReader("2 1"), &out, &diag)
	if code != sysy.ExitFailure {
		t.Errorf("Expected exit code %d, got %d", sysy.ExitFailure, code)
	}
	if !strings.Contains(diag.String(), "Program aborted") {
		t.Errorf("Expected abort message, got %q", diag.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected profile file to exist: %v", err)
	}
}

func TestRunBadFlag(t *testing.T) {
	var out, diag bytes.Buffer
	if code := run([]string{"-nope"}, strings.NewReader(""), &out, &diag); code != 2 {
		t.Errorf("Expected exit code 2, got %d", code)
	}
}
