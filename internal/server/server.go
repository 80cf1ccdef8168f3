/*
 * server.go, part of molmod.
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

//Package server is the HTTP front end of molmod. Clients upload an XYZ file,
//get it back as JSON, and download it modified by a list of operations.
//Atoms are numbered from 1 in everything the server receives or sends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmera/molmod/groups"
	"github.com/rmera/molmod/internal/config"
	"github.com/rmera/molmod/internal/logging"
	"github.com/rmera/molmod/internal/metrics"
	"golang.org/x/sync/errgroup"
)

//Server serves the molmod HTTP API.
type Server struct {
	cfg     *config.Config
	log     logging.Logger
	metrics *metrics.Metrics
	catalog *groups.Catalog
	engine  *gin.Engine
	srv     *http.Server
}

//New builds a server from cfg, which must be valid. m can be nil, in which
//case nothing is measured and no metrics endpoint is exposed.
func New(cfg *config.Config, log logging.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		cfg:     cfg,
		log:     log.Named("server"),
		metrics: m,
		catalog: groups.Default(),
	}
	s.engine = s.routes()
	s.srv = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

//Handler returns the root handler, with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.engine
}

//Run listens on the configured address until ctx is cancelled, and then
//shuts the server down, waiting at most the configured shutdown timeout
//for the requests in flight.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return s.Serve(ctx, ln)
}

//Serve is like Run, but on an existing listener, which is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", logging.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down", logging.Duration("timeout", s.cfg.Server.ShutdownTimeout))
		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.log.Info("stopped")
		return nil
	})
	return g.Wait()
}
