package versioninfo

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultChannelEnv is the environment variable consulted for the host
	// channel in standalone mode.
	DefaultChannelEnv = "CFG_RELEASE_CHANNEL"
	// DefaultChannel is used when the channel variable is unset.
	DefaultChannel = "nightly"
)

// Overrides carries values injected at build time. A present Channel selects
// embedded mode.
type Overrides struct {
	Channel    Text
	CommitHash Text
	CommitDate Text
}

// Config captures everything the resolver reads, so that nothing is taken
// from process state implicitly.
type Config struct {
	// Major, Minor and Patch are the declared package version components.
	Major string
	Minor string
	Patch string

	Injected Overrides

	// ChannelEnv names the channel variable. Defaults to DefaultChannelEnv.
	ChannelEnv string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// VCS answers the commit queries in standalone mode. Defaults to GitCLI.
	VCS VCS
	// RepoDir is handed to the VCS. Empty means the working directory.
	RepoDir string

	// ToolName defaults to the base name of os.Args[0].
	ToolName string

	Logger *zap.Logger
}

// Embedded reports whether the configuration selects embedded mode.
func (c Config) Embedded() bool {
	return c.Injected.Channel.Set
}

func (c Config) withDefaults() Config {
	out := c
	if strings.TrimSpace(out.ChannelEnv) == "" {
		out.ChannelEnv = DefaultChannelEnv
	}
	if out.LookupEnv == nil {
		out.LookupEnv = os.LookupEnv
	}
	if out.VCS == nil {
		out.VCS = GitCLI{}
	}
	if out.ToolName == "" {
		out.ToolName = defaultToolName()
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return out
}

func defaultToolName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "tool"
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}
