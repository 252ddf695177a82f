package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/launchbynttdata/launch-tool-versioninfo/internal/config"
)

type flagBase struct {
	fs      *pflag.FlagSet
	setting string
	name    string
	envKey  string
}

func newFlagBase(fs *pflag.FlagSet, setting, name, envKey string) flagBase {
	return flagBase{fs: fs, setting: setting, name: name, envKey: envKey}
}

func (b flagBase) changed() bool {
	if b.fs == nil || b.name == "" {
		return false
	}
	return b.fs.Changed(b.name)
}

func describeUsage(usage, envKey string) string {
	trimmed := strings.TrimSpace(usage)
	if envKey == "" {
		return trimmed
	}
	if trimmed == "" {
		return fmt.Sprintf("env: %s", envKey)
	}
	return fmt.Sprintf("%s (env: %s)", trimmed, envKey)
}

type stringFlag struct {
	base       flagBase
	defaultVal string
	value      string
}

func bindStringFlag(fs *pflag.FlagSet, name, short, envKey, defaultVal, usage string) *stringFlag {
	f := &stringFlag{
		base:       newFlagBase(fs, name, name, envKey),
		defaultVal: defaultVal,
		value:      defaultVal,
	}
	if fs == nil {
		return f
	}
	if short != "" {
		fs.StringVarP(&f.value, name, short, defaultVal, describeUsage(usage, envKey))
	} else {
		fs.StringVar(&f.value, name, defaultVal, describeUsage(usage, envKey))
	}
	return f
}

func (f *stringFlag) Value(resolver config.Resolver) string {
	return resolver.String(f.base.setting, f.base.envKey, strings.TrimSpace(f.value), f.base.changed(), f.defaultVal)
}

func (f *stringFlag) Choice(resolver config.Resolver, allowed ...string) (string, error) {
	return resolver.Choice(f.base.setting, f.base.envKey, strings.TrimSpace(f.value), f.base.changed(), f.defaultVal, allowed...)
}

// optionalFlag keeps its value untouched and reports whether it was given at
// all, so an explicitly empty value stays distinguishable from an unset one.
type optionalFlag struct {
	base  flagBase
	value string
}

func bindOptionalFlag(fs *pflag.FlagSet, name, envKey, usage string) *optionalFlag {
	f := &optionalFlag{base: newFlagBase(fs, name, name, envKey)}
	if fs == nil {
		return f
	}
	fs.StringVar(&f.value, name, "", describeUsage(usage, envKey))
	return f
}

func (f *optionalFlag) Value(resolver config.Resolver) (string, bool) {
	return resolver.Optional(f.base.setting, f.base.envKey, f.value, f.base.changed())
}
