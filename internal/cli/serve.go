/*
 * serve.go, part of molmod.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rmera/molmod/internal/config"
	"github.com/rmera/molmod/internal/logging"
	"github.com/rmera/molmod/internal/metrics"
	"github.com/rmera/molmod/internal/server"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the molmod HTTP API",
		Long: "serve runs the HTTP API until it gets SIGINT or SIGTERM. If a configuration\n" +
			"file is given, changes to its log level are applied without restarting.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			cfg := *app.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			var m *metrics.Metrics
			if cfg.Metrics.Enabled {
				m = metrics.New()
			}
			log := app.Logger
			if app.Options.ConfigPath != "" {
				watchLevel(app.Options.ConfigPath, log)
			}
			log.Info("starting",
				logging.String("version", Version),
				logging.String("addr", cfg.Server.Addr),
				logging.String("mode", cfg.Server.Mode),
				logging.Bool("metrics", m != nil),
			)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(&cfg, log, m).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from the configuration)")
	return cmd
}

//watchLevel applies the log level of the configuration file every time
//the file changes. Failing to watch is not fatal.
func watchLevel(path string, log logging.Logger) {
	err := config.Watch(path, func(c *config.Config) {
		if err := log.SetLevel(c.Log.Level); err != nil {
			log.Warn("can't change the log level", logging.Err(err))
			return
		}
		log.Info("configuration reloaded", logging.String("log_level", c.Log.Level))
	}, func(err error) {
		log.Warn("ignoring invalid configuration", logging.Err(err))
	})
	if err != nil {
		log.Warn("not watching the configuration", logging.Err(err))
	}
}
