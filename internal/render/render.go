// Package render writes a resolved versioninfo.Info in the supported output
// formats.
package render

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/launchbynttdata/launch-tool-versioninfo/pkg/versioninfo"
)

// Format names an output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists every supported format name.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Parse converts a string into a Format.
func Parse(value string) (Format, error) {
	switch Format(value) {
	case FormatText, FormatJSON, FormatYAML, FormatTable:
		return Format(value), nil
	default:
		return "", fmt.Errorf("invalid output format %q", value)
	}
}

// Record is the structured view of an Info. Absent fields are nil.
type Record struct {
	Tool         string  `json:"tool" yaml:"tool"`
	Version      string  `json:"version" yaml:"version"`
	Major        uint8   `json:"major" yaml:"major"`
	Minor        uint8   `json:"minor" yaml:"minor"`
	Patch        uint16  `json:"patch" yaml:"patch"`
	HostCompiler *string `json:"host_compiler" yaml:"host_compiler"`
	CommitHash   *string `json:"commit_hash" yaml:"commit_hash"`
	CommitDate   *string `json:"commit_date" yaml:"commit_date"`
	Line         string  `json:"line" yaml:"line"`
}

// NewRecord builds the structured view of info.
func NewRecord(info versioninfo.Info) Record {
	return Record{
		Tool:         info.Tool,
		Version:      info.Semver().String(),
		Major:        info.Major,
		Minor:        info.Minor,
		Patch:        info.Patch,
		HostCompiler: optional(info.HostCompiler),
		CommitHash:   optional(info.CommitHash),
		CommitDate:   optional(info.CommitDate),
		Line:         info.String(),
	}
}

// Write renders info to w in the requested format.
func Write(w io.Writer, format Format, info versioninfo.Info) error {
	switch format {
	case FormatText, "":
		_, err := fmt.Fprintln(w, info.String())
		return err
	case FormatJSON:
		out, err := json.MarshalIndent(NewRecord(info), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(NewRecord(info))
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatTable:
		writeTable(w, info)
		return nil
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
}

func writeTable(w io.Writer, info versioninfo.Info) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Tool", info.Tool},
		{"Version", info.Triple()},
		{"Host compiler", info.HostCompiler.OrEmpty()},
		{"Commit hash", strings.TrimSpace(info.CommitHash.OrEmpty())},
		{"Commit date", info.CommitDate.OrEmpty()},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func optional(t versioninfo.Text) *string {
	if !t.Set {
		return nil
	}
	v := t.Value
	return &v
}
