package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchbynttdata/launch-tool-versioninfo/internal/config"
	"github.com/launchbynttdata/launch-tool-versioninfo/internal/logging"
	"github.com/launchbynttdata/launch-tool-versioninfo/internal/render"
	"github.com/launchbynttdata/launch-tool-versioninfo/pkg/versioninfo"
)

const (
	envLogLevel       = "TVI_LOG_LEVEL"
	envRepoDir        = "TVI_REPO_DIR"
	envToolName       = "TVI_TOOL_NAME"
	envPackageVersion = "TVI_PACKAGE_VERSION"
	envBackend        = "TVI_VCS_BACKEND"
	envOutput         = "TVI_OUTPUT"
	envLDFlagsPackage = "TVI_LDFLAGS_PACKAGE"
)

const (
	backendGit   = "git"
	backendGoGit = "go-git"
)

// Execute runs the CLI root command with the provided context.
func Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return newRootCommand().ExecuteContext(ctx)
}

type rootFlagSet struct {
	logLevel *stringFlag
}

type resolveFlagSet struct {
	repo           *stringFlag
	tool           *stringFlag
	packageVersion *stringFlag
	backend        *stringFlag
	channel        *optionalFlag
	commitHash     *optionalFlag
	commitDate     *optionalFlag
}

type runtimeConfig struct {
	resolver config.Resolver
	logger   *zap.Logger
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tvi",
		Short:         "Resolve tool version and build provenance",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = versioninfo.Default().String()
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := &rootFlagSet{
		logLevel: bindStringFlag(cmd.PersistentFlags(), "log-level", "", envLogLevel, logging.LevelTerse, "Log verbosity (quiet, terse or verbose)"),
	}
	cmd.AddCommand(
		newShowCommand(flags),
		newLDFlagsCommand(flags),
		newVersionCommand(),
	)

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print this binary's build metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versioninfo.Default()
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\nhost compiler: %s\n", info, info.HostCompiler.OrEmpty()); err != nil {
				return fmt.Errorf("writing version info: %w", err)
			}
			return nil
		},
	}
}

func newShowCommand(rootFlags *rootFlagSet) *cobra.Command {
	var outputFlag *stringFlag

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Resolve version metadata and print it",
	}
	resolveFlags := bindResolveFlags(cmd)
	outputFlag = bindStringFlag(cmd.Flags(), "output", "o", envOutput, string(render.FormatText), "Output format ("+strings.Join(render.Formats(), ", ")+")")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		runtime, cleanup, err := buildRuntime(rootFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		value, err := outputFlag.Choice(runtime.resolver, render.Formats()...)
		if err != nil {
			return err
		}
		format, err := render.Parse(value)
		if err != nil {
			return err
		}

		info, err := resolveInfo(cmd.Context(), runtime, resolveFlags)
		if err != nil {
			return err
		}

		if err := render.Write(cmd.OutOrStdout(), format, info); err != nil {
			return fmt.Errorf("writing version info: %w", err)
		}
		return nil
	}

	return cmd
}

func newLDFlagsCommand(rootFlags *rootFlagSet) *cobra.Command {
	var pkgFlag *stringFlag

	cmd := &cobra.Command{
		Use:   "ldflags",
		Short: "Print -X linker flags that embed the resolved metadata",
	}
	resolveFlags := bindResolveFlags(cmd)
	pkgFlag = bindStringFlag(cmd.Flags(), "package", "p", envLDFlagsPackage, versioninfo.PackagePath, "Import path of the package holding the stamp variables")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		runtime, cleanup, err := buildRuntime(rootFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		info, err := resolveInfo(cmd.Context(), runtime, resolveFlags)
		if err != nil {
			return err
		}

		flags, err := versioninfo.LDFlags(pkgFlag.Value(runtime.resolver), info)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(flags, " ")); err != nil {
			return fmt.Errorf("writing ldflags: %w", err)
		}
		return nil
	}

	return cmd
}

func bindResolveFlags(cmd *cobra.Command) *resolveFlagSet {
	fs := cmd.Flags()
	return &resolveFlagSet{
		repo:           bindStringFlag(fs, "repo", "C", envRepoDir, "", "Repository directory queried in standalone mode"),
		tool:           bindStringFlag(fs, "tool", "t", envToolName, "", "Tool name shown in the version line"),
		packageVersion: bindStringFlag(fs, "package-version", "", envPackageVersion, "", "Declared package version (defaults to this binary's stamped version)"),
		backend:        bindStringFlag(fs, "backend", "", envBackend, backendGit, "VCS backend for standalone mode (git or go-git)"),
		channel:        bindOptionalFlag(fs, "channel", "", "Injected release channel; selects embedded mode"),
		commitHash:     bindOptionalFlag(fs, "commit-hash", "", "Injected commit hash (embedded mode)"),
		commitDate:     bindOptionalFlag(fs, "commit-date", "", "Injected commit date (embedded mode)"),
	}
}

func resolveInfo(ctx context.Context, runtime runtimeConfig, flags *resolveFlagSet) (versioninfo.Info, error) {
	cfg, err := flags.config(runtime)
	if err != nil {
		return versioninfo.Info{}, err
	}

	info, err := versioninfo.New(ctx, cfg)
	if err != nil {
		return versioninfo.Info{}, err
	}

	runtime.logger.Debug("version metadata resolved",
		zap.String("version", info.Triple()),
		zap.Bool("embedded", cfg.Embedded()),
		zap.Bool("hostCompiler", info.HostCompiler.Set),
		zap.Bool("commitHash", info.CommitHash.Set),
		zap.Bool("commitDate", info.CommitDate.Set),
	)
	return info, nil
}

func (f *resolveFlagSet) config(runtime runtimeConfig) (versioninfo.Config, error) {
	resolver := runtime.resolver
	cfg := versioninfo.StampedConfig()
	// Injection comes from flags only; the binary's own stamps do not leak
	// into the resolution of another tool.
	cfg.Injected = versioninfo.Overrides{}

	if pkgVersion := f.packageVersion.Value(resolver); pkgVersion != "" {
		comps, err := versioninfo.ParseComponents(pkgVersion)
		if err != nil {
			return versioninfo.Config{}, err
		}
		cfg.Major, cfg.Minor, cfg.Patch = comps.Major, comps.Minor, comps.Patch
	}

	backend, err := f.backend.Choice(resolver, backendGit, backendGoGit)
	if err != nil {
		return versioninfo.Config{}, err
	}
	switch backend {
	case backendGoGit:
		cfg.VCS = versioninfo.GoGit{}
	default:
		cfg.VCS = versioninfo.GitCLI{}
	}

	cfg.RepoDir = f.repo.Value(resolver)
	cfg.ToolName = f.tool.Value(resolver)
	cfg.LookupEnv = resolver.Lookup
	cfg.Logger = runtime.logger

	if v, ok := f.channel.Value(resolver); ok {
		cfg.Injected.Channel = versioninfo.Some(v)
	}
	if v, ok := f.commitHash.Value(resolver); ok {
		cfg.Injected.CommitHash = versioninfo.Some(v)
	}
	if v, ok := f.commitDate.Value(resolver); ok {
		cfg.Injected.CommitDate = versioninfo.Some(v)
	}
	return cfg, nil
}

func buildRuntime(flags *rootFlagSet) (runtimeConfig, func(), error) {
	nopResolver := config.NewResolver(zap.NewNop())
	logLevel := flags.logLevel.Value(nopResolver)

	logger, err := logging.New(logLevel)
	if err != nil {
		return runtimeConfig{}, nil, fmt.Errorf("configuring logger: %w", err)
	}

	resolver := config.NewResolver(logger)
	_ = flags.logLevel.Value(resolver)

	cleanup := func() {
		_ = logger.Sync()
	}

	return runtimeConfig{
		resolver: resolver,
		logger:   logger,
	}, cleanup, nil
}
