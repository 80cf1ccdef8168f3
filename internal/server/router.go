/*
 * router.go, part of molmod.
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

package server

import (
	"github.com/gin-gonic/gin"
)

//routes builds the gin engine with the global middleware and every route.
func (s *Server) routes() *gin.Engine {
	gin.SetMode(s.cfg.Server.Mode)
	r := gin.New()
	r.MaxMultipartMemory = s.cfg.Server.MaxUploadBytes
	r.Use(requestID(), recovery(s.log), requestLogging(s.log, s.metrics))

	r.GET("/health", s.health)
	if s.cfg.Metrics.Enabled && s.metrics != nil {
		r.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api/v1")
	api.GET("/groups", s.listGroups)

	mols := api.Group("/molecules", limitBody(s.cfg.Server.MaxUploadBytes))
	mols.POST("/parse", s.parse)
	mols.POST("/modify", s.modify)
	mols.POST("/preview", s.preview)
	return r
}
