package versioninfo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PackagePath is the import path whose variables LDFlags targets by default.
const PackagePath = "github.com/launchbynttdata/launch-tool-versioninfo/pkg/versioninfo"

var (
	// ErrEmptyChannel is returned for a present but empty host channel. An
	// empty stamp reads back as absent and would drop the consumer out of
	// embedded mode.
	ErrEmptyChannel = errors.New("versioninfo: empty release channel cannot be stamped")
	// ErrUnquotable is returned when a value holds both quote characters, which
	// the go build -ldflags splitter cannot represent.
	ErrUnquotable = errors.New("versioninfo: value cannot be quoted for -ldflags")
)

// LDFlags renders info as -X linker flags for pkgPath, so a value resolved in
// standalone mode can be baked into an embedded build. Each definition is
// quoted, so the flags can be joined with spaces into one -ldflags value.
// Absent fields are skipped. A commit hash or date that is empty after
// trimming is skipped as well, since it renders the same as an absent one.
func LDFlags(pkgPath string, info Info) ([]string, error) {
	if strings.TrimSpace(pkgPath) == "" {
		pkgPath = PackagePath
	}

	defs := [][2]string{
		{"major", strconv.Itoa(int(info.Major))},
		{"minor", strconv.Itoa(int(info.Minor))},
		{"patch", strconv.Itoa(int(info.Patch))},
	}
	if info.HostCompiler.Set {
		if info.HostCompiler.Value == "" {
			return nil, ErrEmptyChannel
		}
		defs = append(defs, [2]string{"releaseChannel", info.HostCompiler.Value})
	}
	if hash := strings.TrimSpace(info.CommitHash.OrEmpty()); hash != "" {
		defs = append(defs, [2]string{"commitHash", hash})
	}
	if date := info.CommitDate.OrEmpty(); date != "" {
		defs = append(defs, [2]string{"commitDate", date})
	}

	flags := make([]string, 0, len(defs))
	for _, d := range defs {
		flag, err := xflag(pkgPath, d[0], d[1])
		if err != nil {
			return nil, err
		}
		flags = append(flags, flag)
	}
	return flags, nil
}

// xflag quotes the whole definition: go build splits -ldflags on spaces but
// keeps a field wrapped in single or double quotes intact. There is no
// escaping inside quotes, so the other quote character is used when needed.
func xflag(pkgPath, name, value string) (string, error) {
	def := pkgPath + "." + name + "=" + value
	switch {
	case !strings.Contains(def, "'"):
		return fmt.Sprintf("-X '%s'", def), nil
	case !strings.Contains(def, `"`):
		return fmt.Sprintf(`-X "%s"`, def), nil
	default:
		return "", fmt.Errorf("%w: %s=%q", ErrUnquotable, name, value)
	}
}
