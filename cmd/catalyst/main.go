// Package main provides the entry point for the catalyst CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/catalyst-network/catalyst-ffi-go/internal/cli"
)

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	stop()
	os.Exit(cli.ExitCode(err))
}
