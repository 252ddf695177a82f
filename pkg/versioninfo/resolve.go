package versioninfo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	semver "github.com/blang/semver/v4"
	"go.uber.org/zap"
)

// ErrInvalidComponent marks a declared version component that is not an
// unsigned integer of the required width. It indicates corrupt build metadata.
var ErrInvalidComponent = errors.New("versioninfo: invalid version component")

// ComponentError reports which component failed to parse.
type ComponentError struct {
	Component string
	Value     string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("versioninfo: %s component %q: %v", e.Component, e.Value, e.Err)
}

func (e *ComponentError) Unwrap() []error {
	return []error{ErrInvalidComponent, e.Err}
}

// Components holds the raw declared version components.
type Components struct {
	Major string
	Minor string
	Patch string
}

// ParseComponents splits a dotted package version such as "1.2.3" or "v1.2.3"
// into its components.
func ParseComponents(version string) (Components, error) {
	v, err := semver.ParseTolerant(strings.TrimSpace(version))
	if err != nil {
		return Components{}, fmt.Errorf("parsing package version %q: %w", version, err)
	}
	return Components{
		Major: strconv.FormatUint(v.Major, 10),
		Minor: strconv.FormatUint(v.Minor, 10),
		Patch: strconv.FormatUint(v.Patch, 10),
	}, nil
}

// New resolves an Info from cfg. The only error is a *ComponentError; every
// other missing value degrades to an absent field.
func New(ctx context.Context, cfg Config) (Info, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.withDefaults()

	major, err := parseComponent("major", cfg.Major, 8)
	if err != nil {
		return Info{}, err
	}
	minor, err := parseComponent("minor", cfg.Minor, 8)
	if err != nil {
		return Info{}, err
	}
	patch, err := parseComponent("patch", cfg.Patch, 16)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Tool:  cfg.ToolName,
		Major: uint8(major),
		Minor: uint8(minor),
		Patch: uint16(patch),
	}

	log := cfg.Logger.With(zap.String("tool", cfg.ToolName))
	if cfg.Embedded() {
		log.Debug("resolving embedded build metadata")
		info.HostCompiler = cfg.Injected.Channel
		info.CommitHash = cfg.Injected.CommitHash
		info.CommitDate = cfg.Injected.CommitDate
		return info, nil
	}

	log = log.With(zap.String("repo", cfg.RepoDir))
	log.Debug("resolving standalone build metadata")
	info.HostCompiler = channel(cfg)
	info.CommitHash = query(log, "commit hash", func() (string, error) {
		return cfg.VCS.ShortHash(ctx, cfg.RepoDir)
	})
	info.CommitDate = query(log, "commit date", func() (string, error) {
		return cfg.VCS.ShortDate(ctx, cfg.RepoDir)
	})
	return info, nil
}

// MustNew is like New but panics when a version component is malformed.
func MustNew(ctx context.Context, cfg Config) Info {
	info, err := New(ctx, cfg)
	if err != nil {
		panic(err)
	}
	return info
}

func parseComponent(name, raw string, bits int) (uint64, error) {
	value, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		return 0, &ComponentError{Component: name, Value: raw, Err: err}
	}
	return value, nil
}

func channel(cfg Config) Text {
	if value, ok := cfg.LookupEnv(cfg.ChannelEnv); ok {
		return Some(value)
	}
	return Some(DefaultChannel)
}

func query(log *zap.Logger, field string, fn func() (string, error)) Text {
	value, err := fn()
	if err != nil {
		log.Debug("provenance unavailable", zap.String("field", field), zap.Error(err))
		return Text{}
	}
	return Some(value)
}
