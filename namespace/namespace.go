/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package namespace rewrites a resolved dependency tree's declaration
// files into a flat set of namespaced ambient modules (spec.md §4.H): each
// node in the tree becomes addressable at a tree-position-derived module
// name, its own module specifiers are rewritten to point at those names,
// and the root gets an aggregate alias so consumers can still `import`
// the project by its own name.
package namespace

import (
	"fmt"

	"typings.dev/typings/entryresolve"
)

// Block is one emitted `declare module '...' { ... }` construct (or, for
// ambient nodes, a verbatim passthrough with no wrapper at all). Header, if
// non-empty, is the two-line meta comment spec.md §4.H requires ahead of
// this specific block.
type Block struct {
	Namespace string
	Body      string
	Ambient   bool
	Header    string
}

// Options configures a namespacing pass over one resolved tree.
type Options struct {
	// Name is the project's own root namespace (N in spec.md §4.H).
	Name string
	// Target selects which of the two compiled outputs (main or browser)
	// is being produced.
	Target entryresolve.Target
	// Meta, when true, precedes each emitted block with a header comment
	// naming the compiler version and that block's own entry file path
	// (spec.md §4.H "Meta headers").
	Meta bool
	// CompilerVersion is reported in each block's meta header.
	CompilerVersion string
	// Cwd is the caller's working directory, against which each block's
	// entry file path is rendered relative for its meta header.
	Cwd string
}

// UnresolvedSpecifierError is raised when a non-ambient node's entry file
// imports a module specifier that names neither one of the node's own
// dependencies nor a relative sibling file (spec.md §4.H rewrite rules).
type UnresolvedSpecifierError struct {
	Name string
}

func (e *UnresolvedSpecifierError) Error() string {
	return fmt.Sprintf("unresolved module specifier %q", e.Name)
}
