/*
 * operation.go, part of molmod.
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

package edit

import (
	"fmt"
	"sort"
	"strings"
)

//Kind is the type of an edit operation.
type Kind int

const (
	KindSubstitution Kind = iota
	KindAddition
	KindDeletion
)

var kindNames = [...]string{"substitution", "addition", "deletion"}

func (K Kind) String() string {
	if K < 0 || int(K) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(K))
	}
	return kindNames[K]
}

//ParseKind returns the Kind named s ("substitution", "addition" or "deletion",
//ignoring case).
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation type %q", s)
}

//Operation is one edit. Index is the 0-based index of the anchor atom
//(the atom to be deleted, for deletions). Group is ignored for deletions.
type Operation struct {
	Kind  Kind
	Index int
	Group []string
}

//Substitute returns an operation that replaces atom i with group.
func Substitute(i int, group []string) Operation {
	return Operation{Kind: KindSubstitution, Index: i, Group: group}
}

//Add returns an operation that attaches group to atom i.
func Add(i int, group []string) Operation {
	return Operation{Kind: KindAddition, Index: i, Group: group}
}

//Delete returns an operation that removes atom i.
func Delete(i int) Operation {
	return Operation{Kind: KindDeletion, Index: i}
}

func (O Operation) String() string {
	if O.Kind == KindDeletion {
		return fmt.Sprintf("%s(%d)", O.Kind, O.Index)
	}
	return fmt.Sprintf("%s(%d, [%s])", O.Kind, O.Index, strings.Join(O.Group, " "))
}

//removes returns true if the operation removes its anchor atom.
func (O Operation) removes() bool {
	return O.Kind == KindSubstitution || O.Kind == KindDeletion
}

//schedule returns the positions of ops in the order they should be applied:
//substitutions and additions first, in their original order, then
//deletions from the highest index to the lowest.
func schedule(ops []Operation) []int {
	order := make([]int, len(ops))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		oa, ob := ops[order[a]], ops[order[b]]
		da, db := oa.Kind == KindDeletion, ob.Kind == KindDeletion
		if da != db {
			return db
		}
		if da {
			return oa.Index > ob.Index
		}
		return false
	})
	return order
}

//Schedule returns a new slice with the operations in ops in the order
//they are applied by ApplyOriginal: substitutions and additions first, in
//their original order, followed by deletions in decreasing index order.
func Schedule(ops []Operation) []Operation {
	ret := make([]Operation, 0, len(ops))
	for _, i := range schedule(ops) {
		ret = append(ret, ops[i])
	}
	return ret
}
