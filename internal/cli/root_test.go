package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/launchbynttdata/launch-tool-versioninfo/pkg/versioninfo"
)

const runErrFormat = "run %v: %v"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level=quiet"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestShowEmbeddedText(t *testing.T) {
	out, err := runCLI(t, "show",
		"--tool", "demo",
		"--package-version", "1.2.3",
		"--channel", "stable",
		"--commit-hash", "abc1234\n",
		"--commit-date", "2024-01-01",
	)
	if err != nil {
		t.Fatalf(runErrFormat, "show", err)
	}
	if out != "demo 1.2.3 (abc1234 2024-01-01)\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShowEmbeddedEmptyChannelKeepsTemplate(t *testing.T) {
	out, err := runCLI(t, "show", "--tool", "demo", "--package-version", "v4.5.6", "--channel=")
	if err != nil {
		t.Fatalf(runErrFormat, "show", err)
	}
	if out != "demo 4.5.6 ( )\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShowJSON(t *testing.T) {
	out, err := runCLI(t, "show", "-o", "json",
		"--tool", "demo",
		"--package-version", "0.9.1",
		"--channel", "beta",
		"--commit-date", "2023-12-31",
	)
	if err != nil {
		t.Fatalf(runErrFormat, "show", err)
	}
	for _, want := range []string{`"version": "0.9.1"`, `"host_compiler": "beta"`, `"commit_hash": null`, `"commit_date": "2023-12-31"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output missing %s:\n%s", want, out)
		}
	}
}

func TestLDFlags(t *testing.T) {
	out, err := runCLI(t, "ldflags",
		"--package", "example.com/x/build",
		"--package-version", "1.0.7",
		"--channel", "stable",
		"--commit-hash", " abc1234 ",
		"--commit-date", "2024-01-01",
	)
	if err != nil {
		t.Fatalf(runErrFormat, "ldflags", err)
	}
	want := "-X 'example.com/x/build.major=1' -X 'example.com/x/build.minor=0' -X 'example.com/x/build.patch=7' " +
		"-X 'example.com/x/build.releaseChannel=stable' -X 'example.com/x/build.commitHash=abc1234' " +
		"-X 'example.com/x/build.commitDate=2024-01-01'\n"
	if out != want {
		t.Fatalf("unexpected ldflags\n got: %q\nwant: %q", out, want)
	}
}

func TestLDFlagsQuotesChannelWithSpace(t *testing.T) {
	out, err := runCLI(t, "ldflags", "--package", "p", "--package-version", "1.2.3", "--channel", "beta 2")
	if err != nil {
		t.Fatalf(runErrFormat, "ldflags", err)
	}
	if !strings.Contains(out, "-X 'p.releaseChannel=beta 2'") {
		t.Fatalf("expected quoted channel, got %q", out)
	}
}

func TestLDFlagsRejectsEmptyChannel(t *testing.T) {
	_, err := runCLI(t, "ldflags", "--package", "p", "--package-version", "1.2.3", "--channel=")
	if !errors.Is(err, versioninfo.ErrEmptyChannel) {
		t.Fatalf("expected ErrEmptyChannel, got %v", err)
	}
}

func TestShowRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{name: "unparsable package version", args: []string{"show", "--package-version", "one.two.three", "--channel", "x"}},
		{name: "component too wide", args: []string{"show", "--package-version", "256.0.0", "--channel", "x"}, is: versioninfo.ErrInvalidComponent},
		{name: "unknown backend", args: []string{"show", "--backend", "hg", "--channel", "x"}},
		{name: "unknown output", args: []string{"show", "-o", "xml", "--channel", "x"}},
		{name: "unknown log level", args: []string{"show", "--log-level", "chatty", "--channel", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestVersionOutputs(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf(runErrFormat, "--version", err)
	}
	if !strings.Contains(out, " 0.1.0 (") {
		t.Fatalf("unexpected version line %q", out)
	}

	out, err = runCLI(t, "version")
	if err != nil {
		t.Fatalf(runErrFormat, "version", err)
	}
	if !strings.Contains(out, "host compiler: ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
