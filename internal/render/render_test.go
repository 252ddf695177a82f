package render

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/launchbynttdata/launch-tool-versioninfo/pkg/versioninfo"
)

func sampleInfo() versioninfo.Info {
	return versioninfo.Info{
		Tool:         "demo",
		Major:        1,
		Minor:        2,
		Patch:        3,
		HostCompiler: versioninfo.Some("nightly"),
		CommitHash:   versioninfo.Some("abc1234\n"),
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, FormatText, sampleInfo()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "demo 1.2.3 (abc1234 )\n" {
		t.Fatalf("unexpected text %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleInfo()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"commit_date": null`) {
		t.Fatalf("absent date should encode as null: %s", buf.String())
	}

	var rec Record
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Version != "1.2.3" || rec.Tool != "demo" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.CommitHash == nil || *rec.CommitHash != "abc1234\n" {
		t.Fatalf("hash must be kept verbatim, got %v", rec.CommitHash)
	}
	if rec.CommitDate != nil {
		t.Fatalf("expected nil date")
	}
}

func TestNewRecordVersionMatchesSemver(t *testing.T) {
	t.Parallel()

	info := versioninfo.Info{Major: 255, Patch: 65535}
	rec := NewRecord(info)
	if rec.Version != info.Semver().String() || rec.Version != "255.0.65535" {
		t.Fatalf("unexpected version %q", rec.Version)
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleInfo()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var rec Record
	if err := yaml.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.HostCompiler == nil || *rec.HostCompiler != "nightly" {
		t.Fatalf("unexpected host compiler %v", rec.HostCompiler)
	}
	if rec.Patch != 3 {
		t.Fatalf("unexpected patch %d", rec.Patch)
	}
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, FormatTable, sampleInfo()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Version", "1.2.3", "nightly", "abc1234"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, name := range Formats() {
		if _, err := Parse(name); err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
	}
	if _, err := Parse("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if err := Write(&bytes.Buffer{}, Format("xml"), sampleInfo()); err == nil {
		t.Fatalf("expected error writing unknown format")
	}
}
