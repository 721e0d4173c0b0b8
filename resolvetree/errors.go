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

import (
	"fmt"
	"strings"
)

// CircularDependencyError is a tree-scoped hard error (spec.md §7.3):
// reading a manifest whose Src reappears in its own parent chain aborts
// the whole resolution.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Chain, " -> "))
}

// MissingDependencyError is raised when a required (non-ambient) node
// turns out to be Missing at the point something needs its declarations,
// matching the literal message spec.md scenario S4 expects.
type MissingDependencyError struct {
	Name string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("Missing dependency %q, unable to compile dependency tree", e.Name)
}
