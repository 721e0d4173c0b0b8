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

import "typings.dev/typings/pathutil"

// resolveEntryLocation joins a manifest's raw main/typings/browserTypings
// string against the manifest's own location, so a Node's entry fields
// always hold a location entryresolve.Select and fetchcache can read
// directly rather than a path relative to whatever directory the process
// happened to start in. An empty raw value passes through unchanged.
func resolveEntryLocation(manifestLocation, raw string) string {
	if raw == "" {
		return ""
	}
	joined, err := pathutil.JoinLocation(manifestLocation, raw)
	if err != nil {
		return raw
	}
	return joined
}

// resolveBrowserField joins browser when it is a plain replacement-path
// string (spec.md §4.H "Browser overlay"); a specifier-remap object is
// left untouched, since its values are module specifiers rather than a
// single file location.
func resolveBrowserField(manifestLocation string, browser any) any {
	s, ok := browser.(string)
	if !ok {
		return browser
	}
	return resolveEntryLocation(manifestLocation, s)
}
