package main

import (
	"io"

	"github.com/backkem/wol/pkg/config"
	"github.com/backkem/wol/pkg/notify"
	"github.com/backkem/wol/pkg/registry"
	"github.com/backkem/wol/pkg/wol"
	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file",
			Value:   config.DefaultPath(),
			Sources: cli.EnvVars("WOL_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "disabled, error, warn, info, debug or trace",
			Sources: cli.EnvVars("WOL_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:  "target",
			Usage: "broadcast destination ip[:port]",
		},
		&cli.StringFlag{
			Name:  "interface",
			Usage: `restrict the primary transport to "wireless" or a named interface`,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "overall send bound",
		},
		&cli.DurationFlag{
			Name:  "attempt-timeout",
			Usage: "primary attempt bound before falling back",
		},
	}
}

// env is the per-invocation wiring built from the config file and flags.
type env struct {
	store registry.Store
	svc   *wol.Service
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("target") {
		cfg.Broadcast.Target = cmd.String("target")
	}
	if cmd.IsSet("interface") {
		cfg.Broadcast.Interface = cmd.String("interface")
	}
	if cmd.IsSet("timeout") {
		cfg.Broadcast.Timeout = cmd.Duration("timeout").String()
	}
	if cmd.IsSet("attempt-timeout") {
		cfg.Broadcast.AttemptTimeout = cmd.Duration("attempt-timeout").String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openEnv loads configuration and wires the registry, broadcaster and
// service. Notifications go to the log and to out.
func openEnv(cmd *cli.Command, stderr io.Writer, out notify.Notifier) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	lf, err := cfg.LoggerFactory(stderr)
	if err != nil {
		return nil, err
	}
	b, err := cfg.Broadcaster(lf)
	if err != nil {
		return nil, err
	}
	store, err := cfg.OpenRegistry(lf)
	if err != nil {
		return nil, err
	}

	notifiers := notify.Multi{notify.NewLogNotifier(lf)}
	if out != nil {
		notifiers = append(notifiers, out)
	}

	svc, err := wol.New(wol.Config{
		Broadcaster:   b,
		Registry:      store,
		Notifier:      notifiers,
		LoggerFactory: lf,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &env{store: store, svc: svc}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}
