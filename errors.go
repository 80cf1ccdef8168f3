/*
 * errors.go, part of molmod.
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

package chem

import (
	"fmt"
	"strings"
)

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when the error is passed up. If passed an empty string, it just returns the current decoration.
	Critical() bool
}

// FormatError is returned when a geometry file can't be parsed. No partial molecule
// is returned with it.
type FormatError struct {
	msg  string
	line int //1-based, 0 if the error is not tied to a line.
	deco []string
}

// NewFormatError returns a FormatError for the given (1-based) line.
func NewFormatError(line int, format string, args ...any) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...), line: line, deco: []string{}}
}

func (E *FormatError) Error() string {
	var s string
	if E.line > 0 {
		s = fmt.Sprintf("ill formatted XYZ data, line %d: %s", E.line, E.msg)
	} else {
		s = "ill formatted XYZ data: " + E.msg
	}
	return decoPrefix(E.deco) + s
}

// Line returns the 1-based line where the problem was found, or 0.
func (E *FormatError) Line() int { return E.line }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (E *FormatError) Decorate(dec string) []string {
	if dec == "" {
		return E.deco
	}
	E.deco = append(E.deco, dec)
	return E.deco
}

// Critical always returns true, a file that can't be read is always a problem.
func (E *FormatError) Critical() bool { return true }

// IndexError is returned when an atom index is outside the molecule,
// or refers to an atom that is no longer present.
type IndexError struct {
	Index     int //the offending 0-based index
	Length    int //the number of atoms at the moment of the failure
	Operation int //position of the failing operation in its batch, -1 if not in a batch
	removed   bool
	deco      []string
}

// NewIndexError returns an IndexError not associated with any batch position.
func NewIndexError(index, length int) *IndexError {
	return &IndexError{Index: index, Length: length, Operation: -1, deco: []string{}}
}

// NewRemovedAtomError returns an IndexError for an atom that was removed by an
// earlier operation in the same batch.
func NewRemovedAtomError(index, length int) *IndexError {
	e := NewIndexError(index, length)
	e.removed = true
	return e
}

func (E *IndexError) Error() string {
	var s string
	if E.removed {
		s = fmt.Sprintf("atom %d was already removed by a previous operation", E.Index)
	} else {
		s = fmt.Sprintf("atom index %d out of range for a molecule with %d atoms", E.Index, E.Length)
	}
	if E.Operation >= 0 {
		s = fmt.Sprintf("operation %d: %s", E.Operation, s)
	}
	return decoPrefix(E.deco) + s
}

// Removed returns true if the index referred to an atom already deleted or substituted.
func (E *IndexError) Removed() bool { return E.removed }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (E *IndexError) Decorate(dec string) []string {
	if dec == "" {
		return E.deco
	}
	E.deco = append(E.deco, dec)
	return E.deco
}

// Critical always returns true.
func (E *IndexError) Critical() bool { return true }

// errDecorate decorates err with the caller's name if it implements Error.
// Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
	}
	return err
}

// decoPrefix returns the decorations, outermost caller first, ready to be
// prepended to an error message.
func decoPrefix(deco []string) string {
	if len(deco) == 0 {
		return ""
	}
	r := make([]string, len(deco))
	for i, v := range deco {
		r[len(deco)-1-i] = v
	}
	return strings.Join(r, ": ") + ": "
}

// CheckIndex returns an IndexError if i is not a valid index for a set of n atoms.
func CheckIndex(i, n int) error {
	if i < 0 || i >= n {
		return NewIndexError(i, n)
	}
	return nil
}
