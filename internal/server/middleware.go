/*
 * middleware.go, part of molmod.
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
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rmera/molmod/chemjson"
	"github.com/rmera/molmod/internal/logging"
	"github.com/rmera/molmod/internal/metrics"
)

const (
	//RequestIDHeader carries the request ID, in both directions.
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	unmatchedRoute  = "unmatched"
)

//requestID reuses the client's request ID, or makes a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

//recovery turns a panic in a handler into a 500 with a JSON error body.
func recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic serving request",
			logging.String(requestIDKey, c.GetString(requestIDKey)),
			logging.String("path", c.Request.URL.Path),
			logging.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, &chemjson.Error{
			Kind:     chemjson.KindInternal,
			Function: c.HandlerName(),
			Message:  fmt.Sprintf("internal error: %v", recovered),
		})
	})
}

//requestLogging logs every request once it is served, and records it in m.
//Server errors are logged as errors, client errors as warnings.
func requestLogging(log logging.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		took := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		code := c.Writer.Status()
		m.Request(route, code, took)
		fields := []logging.Field{
			logging.String(requestIDKey, c.GetString(requestIDKey)),
			logging.String("method", c.Request.Method),
			logging.String("route", route),
			logging.Int("status", code),
			logging.Int("bytes", c.Writer.Size()),
			logging.Duration("took", took),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}
		switch {
		case code >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case code >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

//limitBody caps the size of request bodies to n bytes.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
