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

// Package pathutil classifies and composes the locations a typings
// dependency can point at: filesystem paths, HTTP(S) URLs, and .d.ts
// definition files.
package pathutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// IsHTTP reports whether s is an absolute http or https URL.
func IsHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsDefinition reports whether s names a TypeScript declaration file.
func IsDefinition(s string) bool {
	return strings.HasSuffix(s, ".d.ts")
}

// ToDefinition produces a canonical ".d.ts" filename from a dependency name.
// A name already ending in ".d.ts" is returned unchanged; any other name,
// scoped ones (e.g. "@scope/name") included, gets the suffix appended.
func ToDefinition(name string) string {
	if IsDefinition(name) {
		return name
	}
	return name + ".d.ts"
}

// IsAbsolute reports whether s is either an HTTP(S) URL or an absolute
// filesystem path.
func IsAbsolute(s string) bool {
	return IsHTTP(s) || filepath.IsAbs(s)
}

// JoinLocation composes a child location against its parent.
//
//   - If child is already absolute (URL or absolute path), it is returned
//     unchanged.
//   - Else if parent is an HTTP(S) URL, child is resolved against it as a
//     URL reference.
//   - Else child is resolved against parent as a filesystem path, treating
//     parent as the file (not directory) the child is relative to, matching
//     the semantics of a manifest's own directory being the resolution base.
func JoinLocation(parent, child string) (string, error) {
	if IsAbsolute(child) {
		return child, nil
	}

	if IsHTTP(parent) {
		base, err := url.Parse(parent)
		if err != nil {
			return "", err
		}
		ref, err := url.Parse(child)
		if err != nil {
			return "", err
		}
		return base.ResolveReference(ref).String(), nil
	}

	dir := filepath.Dir(parent)
	return filepath.Clean(filepath.Join(dir, child)), nil
}

// JoinDir composes a child path against a parent directory (as opposed to
// JoinLocation, which treats parent as a file and resolves against its
// containing directory). Used when parent is already known to be a
// directory, e.g. a bower components directory.
func JoinDir(parentDir, child string) (string, error) {
	if IsAbsolute(child) {
		return child, nil
	}
	if IsHTTP(parentDir) {
		base, err := url.Parse(parentDir)
		if err != nil {
			return "", err
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		ref, err := url.Parse(child)
		if err != nil {
			return "", err
		}
		return base.ResolveReference(ref).String(), nil
	}
	return filepath.Clean(filepath.Join(parentDir, child)), nil
}

// Dir returns the containing directory of a location, whether it is an
// HTTP(S) URL or a filesystem path.
func Dir(location string) string {
	if IsHTTP(location) {
		u, err := url.Parse(location)
		if err != nil {
			return location
		}
		u.Path = path.Dir(u.Path)
		return u.String()
	}
	return filepath.Dir(location)
}
