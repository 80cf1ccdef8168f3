/*
 * doc.go, part of molmod.
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

/*Package chem is the main package of the molmod library. It provides atom and molecule
structures, reading and writing of XYZ files (plain or compressed) and some atomic data.


	**molmod Capabilities**


    Reads/writes XYZ files, also zstd and gzip compressed ones.

    Substitutes atoms by functional groups, adds groups to atoms and
	deletes atoms (package edit), using a static catalog of
	functional groups (package groups).

    Encodes molecules as JSON (package chemjson) and draws labelled
	2D projections (package chemplot).

    Serves all of the above through a command line tool and an HTTP
	service (cmd/molmod).


molmod uses its own matrix type for coordinates, v3.Matrix, based on gonum.org/v1/gonum/mat.
Each row of a v3.Matrix represents one point in space. Atom indexes are always 0-based.
*/
package chem
