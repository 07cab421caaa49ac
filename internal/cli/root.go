// Package cli provides the command-line interface for catalyst.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/catalyst-network/catalyst-ffi-go/internal/config"
	"github.com/catalyst-network/catalyst-ffi-go/internal/logging"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Exit codes for the CLI.
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
)

// app is the state shared by every subcommand of one invocation. It is
// filled in by the root command's PersistentPreRunE.
type app struct {
	flags  GlobalFlags
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
}

func newRootCmd(a *app, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalyst",
		Short: "Context-bound signatures and range proofs",
		Long: `catalyst exposes the signature and range-proof engines behind the
catalyst FFI library on the command line.

  keygen, pubkey, validate-key   manage keys
  sign, verify                   deterministic context-bound signatures
  commit, prove, verify-proof    Pedersen commitments and range proofs
  audit                          check signature batches for related nonces
  info                           sizes, error codes and effective settings`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, &a.flags)

	addKeyCommands(cmd, a)
	addSignCommands(cmd, a)
	addRangeProofCommands(cmd, a)
	addAuditCommand(cmd, a)
	addInfoCommand(cmd, a)

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if !IsValidOutputFormat(a.flags.Output) {
		return fmt.Errorf("%w: output %q must be one of %v", errcode.ErrInvalidInput, a.flags.Output, ValidOutputFormats())
	}

	cfg, err := config.Load(a.flags.ConfigPath)
	if err != nil {
		return err
	}
	switch {
	case a.flags.Verbose:
		cfg.Log.Level = "debug"
	case a.flags.Quiet:
		cfg.Log.Level = "warn"
	}

	logger, closer, err := logging.New(cfg.Log.Options(), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	return run(ctx, info, nil, nil, nil)
}

func run(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	cmd := newRootCmd(a, info)
	if args != nil {
		cmd.SetArgs(args)
	}
	if stdout != nil {
		cmd.SetOut(stdout)
	}
	if stderr != nil {
		cmd.SetErr(stderr)
	}

	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an Execute error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errcode.ErrInvalidInput):
		return ExitInvalidInput
	default:
		return ExitError
	}
}
