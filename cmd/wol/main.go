// wol sends Wake-on-LAN magic packets and manages a registry of named devices.
//
// Usage:
//
//	wol [global options] <command> [arguments]
//
// Commands:
//
//	wake <name|mac>...        Wake registered devices or raw MAC addresses
//	devices list              List registered devices
//	devices add <name> <mac>  Register a device
//	devices rm <id>           Remove a device
//	listen                    Print magic packets received on a UDP port
//
// Global options:
//
//	--config           Config file (default: <user config dir>/wol/config.yaml)
//	--log-level        disabled, error, warn, info, debug or trace
//	--target           Broadcast destination (default: 255.255.255.255:9)
//	--interface        "any", "wireless" or an interface name
//	--timeout          Overall send bound (default: 6s)
//	--attempt-timeout  Primary attempt bound (default: 5s)
//
// Example:
//
//	wol devices add desktop AA:BB:CC:DD:EE:FF
//	wol wake desktop
//
// wake exits with status 1 if any device could not be woken.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Version is set at build time.
var Version = "0.1.0-dev"

// exitError carries a non-zero exit status for a command that has already
// reported its failures.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "wol: %v\n", err)
		return 1
	}
	return 0
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "wol",
		Usage:     "send Wake-on-LAN magic packets",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			wakeCommand(stdout, stderr),
			devicesCommand(stdout),
			listenCommand(stdout),
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}
