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

package namespace

import "fmt"

// buildAlias produces the root's aggregate alias block (spec.md §4.H):
// consumers importing the project by its own name get re-exported
// whatever the root's own entry exports, whether that's an `export =`
// or a regular set of named exports.
func buildAlias(name, entryNS string, hasExportAssignment bool) Block {
	var body string
	if hasExportAssignment {
		body = fmt.Sprintf("  import main = require('%s');\n  export = main;", entryNS)
	} else {
		body = fmt.Sprintf("  export * from '%s';", entryNS)
	}
	return Block{Namespace: name, Body: "declare module '" + name + "' {\n" + body + "\n}"}
}
