/*
 * handlers.go, part of molmod.
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
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/chemjson"
	"github.com/rmera/molmod/chemplot"
	"github.com/rmera/molmod/edit"
	"github.com/rmera/molmod/internal/metrics"
)

//Form fields of the molecule requests.
const (
	FileField       = "file"
	OperationsField = "operations"
	PlaneField      = "plane"
)

//statusOf maps an error to the HTTP status sent to the client.
func statusOf(jerr *chemjson.Error) int {
	switch jerr.Kind {
	case chemjson.KindFormat, chemjson.KindIndex, chemjson.KindGroup, chemjson.KindRequest:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func badRequest(function, format string, args ...any) *chemjson.Error {
	return &chemjson.Error{Kind: chemjson.KindRequest, Function: function, Message: fmt.Sprintf(format, args...)}
}

//writeError aborts the request with jerr as the JSON body.
func writeError(c *gin.Context, code int, jerr *chemjson.Error) {
	_ = c.Error(jerr)
	c.AbortWithStatusJSON(code, jerr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listGroups(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Categories())
}

//upload reads the XYZ file sent in the file field. It writes the error
//response itself, and returns nil, if the file is missing or can't be read.
func (s *Server) upload(c *gin.Context) *chem.Molecule {
	const funcname = "upload"
	fh, err := c.FormFile(FileField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(c, http.StatusRequestEntityTooLarge, badRequest(funcname, "upload larger than %d bytes", tooBig.Limit))
			return nil
		}
		writeError(c, http.StatusBadRequest, badRequest(funcname, "a geometry is expected in the %q form field: %s", FileField, err))
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusInternalServerError, chemjson.NewError(funcname, err))
		return nil
	}
	defer f.Close()
	mol, err := chem.XYZRead(f)
	if err != nil {
		s.metrics.Parsed(0, err)
		jerr := chemjson.NewError(funcname, err)
		writeError(c, statusOf(jerr), jerr)
		return nil
	}
	s.metrics.Parsed(mol.Len(), nil)
	return mol
}

func (s *Server) parse(c *gin.Context) {
	mol := s.upload(c)
	if mol == nil {
		return
	}
	jm, jerr := chemjson.EncodeMolecule(mol)
	if jerr != nil {
		writeError(c, statusOf(jerr), jerr)
		return
	}
	c.JSON(http.StatusOK, jm)
}

//modify applies the operations field, a JSON array of operations with atoms
//numbered as in the uploaded file, and sends back the resulting XYZ file.
func (s *Server) modify(c *gin.Context) {
	const funcname = "modify"
	mol := s.upload(c)
	if mol == nil {
		return
	}
	raw := strings.TrimSpace(c.PostForm(OperationsField))
	if raw == "" {
		writeError(c, http.StatusBadRequest, badRequest(funcname, "a JSON list of operations is expected in the %q form field", OperationsField))
		return
	}
	ops, jerr := chemjson.DecodeOperations(strings.NewReader(raw), s.catalog)
	if jerr != nil {
		writeError(c, statusOf(jerr), jerr)
		return
	}
	res, err := edit.ApplyOriginal(mol, ops)
	if err != nil {
		s.metrics.Operations(ops, metrics.ResultError)
		jerr := chemjson.NewError(funcname, err)
		writeError(c, statusOf(jerr), jerr)
		return
	}
	s.metrics.Operations(ops, metrics.ResultOK)
	out, err := chem.XYZStringWrite(res)
	if err != nil {
		writeError(c, http.StatusInternalServerError, chemjson.NewError(funcname, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.Export.FileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(out))
}

//preview sends a PNG with the uploaded molecule projected on the plane
//given in the plane field, or the configured one.
func (s *Server) preview(c *gin.Context) {
	const funcname = "preview"
	mol := s.upload(c)
	if mol == nil {
		return
	}
	plane, err := chemplot.ParsePlane(c.DefaultPostForm(PlaneField, s.cfg.Export.Plane))
	if err != nil {
		writeError(c, http.StatusBadRequest, badRequest(funcname, "%s", err))
		return
	}
	var buf bytes.Buffer
	if err := chemplot.Write(&buf, mol, plane, mol.Formula()); err != nil {
		writeError(c, http.StatusInternalServerError, chemjson.NewError(funcname, err))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
