package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/ami/pkg/agent"
	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/store"
)

// env is what every command needs: config, a logger and a backend client.
type env struct {
	cfg    store.Config
	log    *logrus.Logger
	client *client.Client
}

func bindFlags(cmd *cobra.Command) {
	for key, flag := range map[string]string{
		"server":    "server",
		"log_level": "log-level",
	} {
		if f := cmd.PersistentFlags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)
	return log, nil
}

func loadEnv() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	c, err := client.New(cfg.Server(),
		client.WithLogger(log),
		client.WithTimeout(cfg.Timeout()),
		client.WithReportCache(cfg.ReportCacheTTL()),
	)
	if err != nil {
		return nil, err
	}
	log.WithField("server", cfg.Server()).Debug("loaded config")
	return &env{cfg: cfg, log: log, client: c}, nil
}

// agent resolves which agent a command acts for: the --agent flag, then
// config, then the backend's active agent, then the default.
func (e *env) agent(ctx context.Context, flag string) string {
	name := flag
	if name == "" {
		name = e.cfg.Agent()
	}
	if name == "" {
		active, err := e.client.ActiveAgent(ctx)
		if err != nil {
			e.log.WithError(err).Debug("active agent unavailable")
		}
		name = active
	}
	if name == "" {
		return agent.Default
	}
	if a, err := agent.ForAlias(name); err == nil {
		return a.ID
	}
	return name
}

func (e *env) transcript() (store.Transcript, error) {
	return store.Load(e.cfg)
}
