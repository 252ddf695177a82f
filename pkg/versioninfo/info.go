// Package versioninfo resolves version and build provenance for a tool's
// --version output.
//
// Provenance comes from one of two places. A standalone build asks the
// environment and git. An embedded build, shipped as part of a larger
// toolchain release, receives the values through the linker:
//
//	go build -ldflags "-X .../pkg/versioninfo.releaseChannel=stable -X ..."
//
// The presence of an injected release channel selects embedded mode.
package versioninfo

import (
	"fmt"
	"strings"

	semver "github.com/blang/semver/v4"
)

// Text is an optional string. The zero value is absent.
type Text struct {
	Value string
	Set   bool
}

// Some returns a present Text holding value.
func Some(value string) Text {
	return Text{Value: value, Set: true}
}

// OrEmpty returns the value, or "" when absent.
func (t Text) OrEmpty() string {
	if !t.Set {
		return ""
	}
	return t.Value
}

// Info is an immutable snapshot of a tool's version and provenance.
type Info struct {
	Tool         string
	Major        uint8
	Minor        uint8
	Patch        uint16
	HostCompiler Text
	CommitHash   Text
	CommitDate   Text
}

// String renders the version line using the resolved tool name.
func (i Info) String() string {
	return i.Format(i.Tool)
}

// Format renders "<tool> <major>.<minor>.<patch> (<hash> <date>)".
// Absent fields collapse to empty text; the hash is trimmed, the date is not.
func (i Info) Format(tool string) string {
	return fmt.Sprintf("%s %s (%s %s)",
		tool,
		i.Triple(),
		strings.TrimSpace(i.CommitHash.OrEmpty()),
		i.CommitDate.OrEmpty(),
	)
}

// Triple returns the dotted "<major>.<minor>.<patch>" form.
func (i Info) Triple() string {
	return fmt.Sprintf("%d.%d.%d", i.Major, i.Minor, i.Patch)
}

// Semver returns the numeric version as a semver.Version.
func (i Info) Semver() semver.Version {
	return semver.Version{
		Major: uint64(i.Major),
		Minor: uint64(i.Minor),
		Patch: uint64(i.Patch),
	}
}
