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

package resolvetree

// mergeRoots combines the three top-level ecosystem subtrees into a single
// root node, per spec.md §4.E's merge rule, applied in order bower, npm,
// native: the last subtree that defines ANY of {main, browser, typings,
// browserTypings} wins for all four plus name, src, type, version, and
// ambient (invariant I4 — a native typings.json's own ambient:true must
// survive the merge), and each dependency map is key-wise unioned with
// later subtrees overwriting earlier ones.
func mergeRoots(bower, npm, native *Node) *Node {
	root := &Node{Missing: true}

	for _, candidate := range []*Node{bower, npm, native} {
		if candidate == nil || candidate.Missing {
			continue
		}
		root.Missing = false

		if definesEntry(candidate) {
			root.Src = candidate.Src
			root.Name = candidate.Name
			root.Type = candidate.Type
			root.Version = candidate.Version
			root.Ambient = candidate.Ambient
			root.Main = candidate.Main
			root.Browser = candidate.Browser
			root.Typings = candidate.Typings
			root.BrowserTypings = candidate.BrowserTypings
		}

		for _, kind := range DepKinds {
			for name, child := range candidate.DepMap(kind) {
				root.SetDep(kind, name, child)
			}
		}
	}

	if root.Missing {
		return root
	}
	if root.Src == "" {
		// None of the three subtrees defined any entry field (e.g. a
		// root npm/bower manifest with only a name); keep the first
		// non-missing subtree's identity so diagnostics still name it.
		for _, candidate := range []*Node{native, npm, bower} {
			if candidate != nil && !candidate.Missing {
				root.Src = candidate.Src
				root.Name = candidate.Name
				break
			}
		}
	}
	return root
}

func definesEntry(n *Node) bool {
	return n.Main != "" || n.Browser != nil || n.Typings != "" || n.BrowserTypings != ""
}
