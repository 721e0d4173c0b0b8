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

// Package entryresolve picks a tree node's declaration entry file for a
// compile target, with the precedence order spec.md §4.F defines.
package entryresolve

import (
	"context"
	"fmt"
	"strings"

	"typings.dev/typings/fetchcache"
	"typings.dev/typings/fs"
	"typings.dev/typings/manifest"
	"typings.dev/typings/pathutil"
	"typings.dev/typings/resolvetree"
)

// Target names which of the two compiled outputs an entry is being
// resolved for.
type Target int

const (
	Main Target = iota
	Browser
)

// EntryNotFoundError is raised when a node's main points at an
// implementation file but no sibling .d.ts exists for it (spec.md §4.F
// step 4).
type EntryNotFoundError struct {
	Name string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("EntryNotFound: %q", e.Name)
}

// EntryResolutionError is raised when a node has none of browserTypings,
// typings, or a usable main (spec.md §4.F step 5).
type EntryResolutionError struct {
	Name string
}

func (e *EntryResolutionError) Error() string {
	return fmt.Sprintf("Unable to resolve entry \".d.ts\" file for %q", e.Name)
}

// TypingsReadFailureError wraps a read failure on an otherwise-selected
// entry file, named with the node's fully-namespaced name for
// diagnosability (spec.md §4.F, §7.2).
type TypingsReadFailureError struct {
	Name string
	Err  error
}

func (e *TypingsReadFailureError) Error() string {
	return fmt.Sprintf("TypingsReadFailure for %q: %s", e.Name, e.Err)
}

func (e *TypingsReadFailureError) Unwrap() error { return e.Err }

// Select picks node's declaration entry location for target, per the
// precedence in spec.md §4.F. It does not fetch the file.
func Select(osfs fs.FileSystem, node *resolvetree.Node, displayName string) func(target Target) (string, error) {
	return func(target Target) (string, error) {
		if target == Browser && node.BrowserTypings != "" {
			return node.BrowserTypings, nil
		}
		if node.Typings != "" {
			return node.Typings, nil
		}

		main := node.Main
		if target == Browser {
			if s, ok := manifest.BrowserString(node.Browser); ok {
				main = s
			}
		}

		if main == "" {
			return "", &EntryResolutionError{Name: displayName}
		}
		if pathutil.IsDefinition(main) {
			return main, nil
		}

		candidate := substituteExtension(main)
		if !pathutil.IsHTTP(candidate) && !osfs.Exists(candidate) {
			return "", &EntryNotFoundError{Name: displayName}
		}
		return candidate, nil
	}
}

// FetchEntry resolves and reads the text of node's declaration entry for
// target, wrapping read failures in TypingsReadFailureError.
func FetchEntry(ctx context.Context, fetcher *fetchcache.Fetcher, osfs fs.FileSystem, node *resolvetree.Node, displayName string, target Target) (string, error) {
	location, err := Select(osfs, node, displayName)(target)
	if err != nil {
		return "", err
	}

	text, err := fetcher.FetchText(ctx, location)
	if err != nil {
		return "", &TypingsReadFailureError{Name: displayName, Err: err}
	}
	return text, nil
}

// substituteExtension replaces an implementation file's extension (e.g.
// ".js") with ".d.ts", the fallback spec.md §4.F step 4 describes.
func substituteExtension(main string) string {
	if idx := strings.LastIndex(main, "."); idx >= 0 && !strings.Contains(main[idx:], "/") {
		return main[:idx] + ".d.ts"
	}
	return main + ".d.ts"
}
