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

// rctx carries the plumbing every recursive resolve* call needs beyond the
// public Options: the bower components directory discovered once at the
// top of resolution (native dependency strings of the form "bower:NAME"
// resolve against it too).
type rctx struct {
	opts          Options
	componentsDir string
}
