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

// Package resolvetree builds the unified dependency tree from spec.md §3:
// it walks the native, npm, and bower ecosystems concurrently from a
// starting directory, merges their overlays, detects cycles, and marks
// partial failures as missing nodes rather than propagating them.
package resolvetree

// EcosystemType names which manifest format produced a Node.
type EcosystemType int

const (
	Native EcosystemType = iota
	Npm
	Bower
	// File marks a node built directly from a .d.ts-typed dependency
	// string, with no manifest backing it at all (spec.md B2).
	File
)

func (t EcosystemType) String() string {
	switch t {
	case Native:
		return "native"
	case Npm:
		return "npm"
	case Bower:
		return "bower"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// DepKind identifies one of a node's four dependency maps.
type DepKind int

const (
	Dependencies DepKind = iota
	DevDependencies
	AmbientDependencies
	AmbientDevDependencies
)

// DepKinds lists the four dependency-map kinds in the fixed order spec.md
// §4.H requires for deterministic output: [dependencies, devDependencies,
// ambientDependencies, ambientDevDependencies].
var DepKinds = [...]DepKind{Dependencies, DevDependencies, AmbientDependencies, AmbientDevDependencies}

// Node is the central data structure of the core (spec.md §3): one entry
// in the merged, multi-ecosystem dependency tree.
type Node struct {
	// Src uniquely identifies the manifest (or bare .d.ts location) that
	// produced this node along any chain of Parent links (invariant I1).
	Src string
	// Type names which ecosystem produced this node.
	Type EcosystemType
	// Missing is true when the manifest could not be read; per I2 all
	// four dependency maps are then empty.
	Missing bool
	// Ambient is true when this node's declarations take effect globally,
	// with no enclosing module wrapper (invariant I4).
	Ambient bool

	Name    string
	Version string

	Main           string
	Browser        any
	Typings        string
	BrowserTypings string

	// Raw is the short-form dependency string that produced this node,
	// kept only for diagnostics.
	Raw string

	// Parent is a weak back-edge to the node whose manifest depends on
	// this one; consulted only for cycle detection and URL base
	// resolution, never followed for ownership or destruction.
	Parent *Node

	deps [4]map[string]*Node
}

// DepMap returns the dependency map of the given kind, or nil when none
// has been set; callers can range over the nil map safely.
func (n *Node) DepMap(kind DepKind) map[string]*Node {
	if n.deps[kind] == nil {
		return nil
	}
	return n.deps[kind]
}

// SetDep records child as the kind-dependency of n named name.
func (n *Node) SetDep(kind DepKind, name string, child *Node) {
	if n.deps[kind] == nil {
		n.deps[kind] = make(map[string]*Node)
	}
	n.deps[kind][name] = child
}

// EnsureDepMap returns the dependency map of the given kind, creating an
// empty one if absent, for callers that need to write into it.
func (n *Node) EnsureDepMap(kind DepKind) map[string]*Node {
	if n.deps[kind] == nil {
		n.deps[kind] = make(map[string]*Node)
	}
	return n.deps[kind]
}

// ParentChain walks Parent links from n upward, returning each Src in turn
// (n's own first): the chain invariant I1 constrains.
func (n *Node) ParentChain() []string {
	var chain []string
	for p := n; p != nil; p = p.Parent {
		chain = append(chain, p.Src)
	}
	return chain
}
