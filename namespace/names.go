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

import (
	"path"
	"strings"
)

// submoduleName derives the path segment used for an inline `declare
// module "raw"` block or a relative import, per spec.md §4.H: path-like
// names are cleaned and stripped of the project-name prefix and
// extension; plain identifiers are used as-is (minus extension).
func submoduleName(raw, projectName string) string {
	if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		cleaned := path.Clean(raw)
		cleaned = strings.TrimPrefix(cleaned, "./")
		cleaned = strings.TrimPrefix(cleaned, projectName+"/")
		return stripDeclExtension(cleaned)
	}
	return stripDeclExtension(raw)
}

func stripDeclExtension(s string) string {
	s = strings.TrimSuffix(s, ".d.ts")
	s = strings.TrimSuffix(s, ".ts")
	return s
}

// ensureDefinitionPath appends ".d.ts" to a bare relative specifier so it
// can be resolved against the filesystem/HTTP cache, leaving specifiers
// that already name a concrete file untouched.
func ensureDefinitionPath(name string) string {
	if strings.HasSuffix(name, ".d.ts") || strings.HasSuffix(name, ".ts") {
		return name
	}
	return name + ".d.ts"
}
