/*
 * groups.go, part of molmod.
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

package groups

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

//ErrUnknownGroup is returned (wrapped) when a group or category is not in the catalog.
var ErrUnknownGroup = errors.New("unknown functional group")

//Group is a named functional group.
type Group struct {
	Name    string   `yaml:"name" json:"name"`
	Symbols []string `yaml:"symbols" json:"symbols"`
}

//ShortName returns the name without the formula in parentheses, i.e.
//"Methyl" for "Methyl (-CH3)".
func (G Group) ShortName() string {
	if i := strings.Index(G.Name, " ("); i > 0 {
		return G.Name[:i]
	}
	return G.Name
}

func (G Group) copy() Group {
	G.Symbols = append([]string(nil), G.Symbols...)
	return G
}

//Category is an ordered set of groups of the same chemical family.
type Category struct {
	Name   string  `yaml:"name" json:"name"`
	Groups []Group `yaml:"groups" json:"groups"`
}

//Catalog is a read-only, ordered set of group categories.
type Catalog struct {
	categories []Category
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

//Default returns the catalog compiled into the program. It panics if the
//embedded data is broken, which can only be a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := parse(embeddedCatalog)
		if err != nil {
			panic("groups: embedded catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func parse(data []byte) (*Catalog, error) {
	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("no categories")
	}
	seen := make(map[string]bool)
	for _, c := range doc.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category without a name")
		}
		for _, g := range c.Groups {
			if g.Name == "" || len(g.Symbols) == 0 {
				return nil, fmt.Errorf("category %q: group %q is empty", c.Name, g.Name)
			}
			if seen[g.ShortName()] {
				return nil, fmt.Errorf("group %q defined twice", g.ShortName())
			}
			seen[g.ShortName()] = true
		}
	}
	return &Catalog{categories: doc.Categories}, nil
}

//Categories returns a copy of the categories, in catalog order.
func (C *Catalog) Categories() []Category {
	ret := make([]Category, len(C.categories))
	for i, c := range C.categories {
		ret[i] = Category{Name: c.Name, Groups: make([]Group, len(c.Groups))}
		for j, g := range c.Groups {
			ret[i].Groups[j] = g.copy()
		}
	}
	return ret
}

//Map returns the catalog as category name -> group name -> symbols.
//The order of the catalog is lost, use Categories when it matters.
func (C *Catalog) Map() map[string]map[string][]string {
	ret := make(map[string]map[string][]string, len(C.categories))
	for _, c := range C.categories {
		m := make(map[string][]string, len(c.Groups))
		for _, g := range c.Groups {
			m[g.Name] = g.copy().Symbols
		}
		ret[c.Name] = m
	}
	return ret
}

func match(g Group, name string) bool {
	return strings.EqualFold(g.Name, name) || strings.EqualFold(g.ShortName(), name)
}

//Lookup returns the symbols of the group name in category. Both the full
//("Methyl (-CH3)") and the short ("Methyl") group names are accepted, ignoring case.
func (C *Catalog) Lookup(category, name string) ([]string, error) {
	for _, c := range C.categories {
		if c.Name != category {
			continue
		}
		for _, g := range c.Groups {
			if match(g, name) {
				return g.copy().Symbols, nil
			}
		}
		return nil, fmt.Errorf("%w: %q in category %q", ErrUnknownGroup, name, category)
	}
	return nil, fmt.Errorf("%w: no category %q", ErrUnknownGroup, category)
}

//Find searches all categories for the group name (full or short, ignoring case)
//and returns it together with the name of its category.
func (C *Catalog) Find(name string) (Group, string, error) {
	for _, c := range C.categories {
		for _, g := range c.Groups {
			if match(g, name) {
				return g.copy(), c.Name, nil
			}
		}
	}
	return Group{}, "", fmt.Errorf("%w: %q", ErrUnknownGroup, name)
}
