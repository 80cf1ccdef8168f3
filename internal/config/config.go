/*
 * config.go, part of molmod.
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

//Package config loads the configuration of the molmod programs from an
//optional YAML file and MOLMOD_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rmera/molmod/chemplot"
	"github.com/rmera/molmod/internal/logging"
)

//Config is the complete configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Log     logging.Config `mapstructure:"log"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Export  ExportConfig   `mapstructure:"export"`
}

//ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"` //gin mode: debug, release or test
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

//MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

//ExportConfig configures the files produced for the user.
type ExportConfig struct {
	FileName string `mapstructure:"file_name"` //name of the modified geometry offered for download
	Plane    string `mapstructure:"plane"`     //projection plane of the previews
}

//Validate checks that cfg can be used. Call it after ApplyDefaults.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("config: server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config: server timeouts can't be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}
	if c.Export.FileName == "" || strings.ContainsAny(c.Export.FileName, `/\"`) {
		return fmt.Errorf("config: export.file_name %q is not a valid file name", c.Export.FileName)
	}
	if _, err := chemplot.ParsePlane(c.Export.Plane); err != nil {
		return fmt.Errorf("config: export.plane: %w", err)
	}
	return nil
}
