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

// Package assemble joins a namespacing pass's block stream into the final
// compiled text (spec.md §4.I), the last and simplest stage of the
// pipeline: no further rewriting happens here.
package assemble

import (
	"strings"

	"typings.dev/typings/namespace"
)

// Join concatenates blocks in order, one blank line apart, each preceded by
// its own meta header comment when the block carries one (spec.md §4.H
// "Meta headers").
func Join(blocks []namespace.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		part := b.Body
		if b.Header != "" {
			part = b.Header + "\n" + part
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "\n\n") + "\n"
}
