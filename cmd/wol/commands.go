package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/backkem/wol/pkg/notify"
	"github.com/backkem/wol/pkg/transport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"
)

func wakeCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "wake",
		Usage:     "wake registered devices or raw MAC addresses",
		ArgsUsage: "<name|mac>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "include transport diagnostics",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			targets := cmd.Args().Slice()
			if len(targets) == 0 {
				return fmt.Errorf("wake: at least one device name or MAC is required")
			}

			out := notify.NewWriterNotifier(stdout)
			out.Verbose = cmd.Bool("verbose")

			e, err := openEnv(cmd, stderr, out)
			if err != nil {
				return err
			}
			defer e.Close()

			failed := 0
			for _, r := range e.svc.WakeAll(ctx, targets...) {
				switch {
				case r.Err != nil:
					fmt.Fprintf(stderr, "wol: %v\n", r.Err)
					failed++
				case !r.Outcome.Success:
					failed++
				}
			}
			if failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

func devicesCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "manage registered devices",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list registered devices",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					e, err := openEnv(cmd, cmd.Root().ErrWriter, nil)
					if err != nil {
						return err
					}
					defer e.Close()

					devices, err := e.svc.Devices(ctx)
					if err != nil {
						return err
					}
					if len(devices) == 0 {
						fmt.Fprintln(stdout, "No devices registered.")
						return nil
					}

					t := table.New().
						Border(lipgloss.NormalBorder()).
						Headers("ID", "NAME", "MAC")
					for _, d := range devices {
						t.Row(strconv.FormatInt(d.ID, 10), d.Name, d.MAC.String())
					}
					fmt.Fprintln(stdout, t.Render())
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "register a device",
				ArgsUsage: "<name> <mac>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("devices add: expected <name> <mac>")
					}
					e, err := openEnv(cmd, cmd.Root().ErrWriter, nil)
					if err != nil {
						return err
					}
					defer e.Close()

					d, err := e.svc.AddDevice(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
					if err != nil {
						return err
					}
					fmt.Fprintf(stdout, "Added %s with id %d\n", d, d.ID)
					return nil
				},
			},
			{
				Name:      "rm",
				Aliases:   []string{"remove"},
				Usage:     "remove a device by id",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := strconv.ParseInt(cmd.Args().First(), 10, 64)
					if err != nil || cmd.Args().Len() != 1 {
						return fmt.Errorf("devices rm: expected a numeric <id>")
					}
					e, err := openEnv(cmd, cmd.Root().ErrWriter, nil)
					if err != nil {
						return err
					}
					defer e.Close()

					if err := e.svc.RemoveDevice(ctx, id); err != nil {
						return err
					}
					fmt.Fprintf(stdout, "Removed device %d\n", id)
					return nil
				},
			},
		},
	}
}

func listenCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "print magic packets received on a UDP port",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address",
				Value: ":9",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			lf, err := cfg.LoggerFactory(cmd.Root().ErrWriter)
			if err != nil {
				return err
			}

			l, err := transport.NewListener(transport.ListenerConfig{
				ListenAddr: cmd.String("addr"),
				Handler: func(r transport.Received) {
					fmt.Fprintf(stdout, "%s  %s  from %s\n", r.At.Format("15:04:05.000"), r.MAC, r.From)
				},
				LoggerFactory: lf,
			})
			if err != nil {
				return err
			}
			if err := l.Start(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Listening on %s\n", l.LocalAddr())

			<-ctx.Done()
			return l.Stop()
		},
	}
}
