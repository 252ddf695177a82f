package versioninfo

import "context"

// Build-time values, set with -ldflags "-X <this package>.<name>=<value>".
// The linker cannot tell an unset string from an empty one, so an empty
// injected value counts as absent.
var (
	major = "0"
	minor = "1"
	patch = "0"

	releaseChannel string
	commitHash     string
	commitDate     string
)

// StampedConfig returns a Config built from the linker-injected values.
func StampedConfig() Config {
	return Config{
		Major: major,
		Minor: minor,
		Patch: patch,
		Injected: Overrides{
			Channel:    stamped(releaseChannel),
			CommitHash: stamped(commitHash),
			CommitDate: stamped(commitDate),
		},
	}
}

// Default resolves the stamped configuration. It panics if the stamped
// version components are malformed.
func Default() Info {
	return MustNew(context.Background(), StampedConfig())
}

func stamped(value string) Text {
	if value == "" {
		return Text{}
	}
	return Some(value)
}
