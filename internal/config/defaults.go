/*
 * defaults.go, part of molmod.
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

package config

import "time"

const (
	DefaultServerAddr      = ":8080"
	DefaultServerMode      = "release"
	DefaultMaxUploadBytes  = 8 << 20
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"

	DefaultExportFileName = "modified_molecule.xyz"
	DefaultExportPlane    = "best"
)

//defaults maps every configuration key to its default value. Keys must be
//known to viper for environment variables to override them.
var defaults = map[string]any{
	"server.addr":             DefaultServerAddr,
	"server.mode":             DefaultServerMode,
	"server.max_upload_bytes": DefaultMaxUploadBytes,
	"server.read_timeout":     DefaultReadTimeout,
	"server.write_timeout":    DefaultWriteTimeout,
	"server.shutdown_timeout": DefaultShutdownTimeout,
	"log.level":               DefaultLogLevel,
	"log.format":              DefaultLogFormat,
	"metrics.enabled":         DefaultMetricsEnabled,
	"metrics.path":            DefaultMetricsPath,
	"export.file_name":        DefaultExportFileName,
	"export.plane":            DefaultExportPlane,
}

//ApplyDefaults fills the empty fields of cfg with the defaults.
//Booleans can't be told apart from unset ones, and are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Export.FileName == "" {
		cfg.Export.FileName = DefaultExportFileName
	}
	if cfg.Export.Plane == "" {
		cfg.Export.Plane = DefaultExportPlane
	}
}

//Default returns the configuration used when no file or environment variables are given.
func Default() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled}}
	ApplyDefaults(cfg)
	return cfg
}
