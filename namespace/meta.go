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
	"fmt"
	"path/filepath"
)

// blockHeader renders the two-line meta-header spec.md §4.H requires ahead
// of each emitted block (the compiler version, then the block's own entry
// file path relative to opts.Cwd), or "" when opts.Meta is off.
func blockHeader(opts Options, location string) string {
	if !opts.Meta {
		return ""
	}
	return fmt.Sprintf("// Generated by typings %s\n// from %s", opts.CompilerVersion, displayPath(opts.Cwd, location))
}

// displayPath renders location relative to cwd, falling back to location
// unchanged when cwd is empty or the two share no common root.
func displayPath(cwd, location string) string {
	if cwd == "" {
		return location
	}
	rel, err := filepath.Rel(cwd, location)
	if err != nil {
		return location
	}
	return rel
}
