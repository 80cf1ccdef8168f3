/*
 * root.go, part of molmod.
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

//Package cli implements the molmod command line program.
//Atoms are numbered from 1 in all arguments and output.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmera/molmod/groups"
	"github.com/rmera/molmod/internal/config"
	"github.com/rmera/molmod/internal/logging"
	"github.com/spf13/cobra"
)

//Build-time variables, set via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

//Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

//RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
}

//App carries what the commands need, once the global flags are processed.
type App struct {
	Options *RootOptions
	Config  *config.Config
	Logger  logging.Logger
	Catalog *groups.Catalog
}

type appKey struct{}

//NewRootCommand returns the molmod command with all its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "molmod",
		Short: "Edit molecular geometries by adding, replacing and removing functional groups",
		Long: "molmod reads XYZ geometries and modifies them with functional groups from\n" +
			"a built-in catalog. It can also serve the same operations over HTTP.",
		Version: fmt.Sprintf("%s (commit %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "configuration file (YAML)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error (default from the configuration)")
	pf.StringVar(&opts.OutputFormat, "output", OutputText, "output format: text or json")

	cmd.AddCommand(
		newGroupsCommand(),
		newShowCommand(),
		newModifyCommand(),
		newServeCommand(),
	)
	return cmd
}

//setup loads the configuration, builds the logger and stores both in
//the context of cmd.
func setup(cmd *cobra.Command, opts *RootOptions) error {
	opts.OutputFormat = strings.ToLower(opts.OutputFormat)
	if opts.OutputFormat != OutputText && opts.OutputFormat != OutputJSON {
		return fmt.Errorf("unknown output format %q, expected text or json", opts.OutputFormat)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			return err
		}
		cfg.Log.Level = opts.LogLevel
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	app := &App{Options: opts, Config: cfg, Logger: log, Catalog: groups.Default()}
	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))
	return nil
}

//GetApp returns the App stored in the context of cmd by the root command.
func GetApp(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("command %q has no context", cmd.Name())
	}
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("command %q was not set up by the root command", cmd.Name())
	}
	return app, nil
}

//Execute runs the program with the command line arguments and prints any error.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %s\n", err)
		return err
	}
	return nil
}
