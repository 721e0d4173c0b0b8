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
	"context"
	"errors"
	"path"
	"sort"

	"typings.dev/typings/declfile"
	"typings.dev/typings/entryresolve"
	"typings.dev/typings/fetchcache"
	"typings.dev/typings/fs"
	"typings.dev/typings/resolvetree"
)

// walker accumulates the namespaced block stream for one compile target
// over one resolved tree, carrying the shared fetcher/filesystem. Each
// node's entry is rendered with its own set of already-expanded
// relative-file locations, so a sibling file is emitted at most once per
// node.
type walker struct {
	fetcher *fetchcache.Fetcher
	fs      fs.FileSystem
	opts    Options

	blocks []Block
}

// Compile walks root post-order (spec.md §4.H), emitting one namespaced
// block per non-ambient node, a verbatim passthrough block per ambient
// node, and a trailing alias block for the root itself.
func Compile(ctx context.Context, fetcher *fetchcache.Fetcher, osfs fs.FileSystem, root *resolvetree.Node, opts Options) ([]Block, error) {
	w := &walker{fetcher: fetcher, fs: osfs, opts: opts}
	if err := w.walkNode(ctx, root, opts.Name, opts.Name, true); err != nil {
		return nil, err
	}
	return w.blocks, nil
}

func (w *walker) walkNode(ctx context.Context, node *resolvetree.Node, displayName, baseNS string, isRoot bool) error {
	for _, kind := range resolvetree.DepKinds {
		m := node.DepMap(kind)
		if m == nil {
			continue
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			child := m[key]
			if child.Missing {
				continue
			}
			childNS := baseNS + "~" + key
			if err := w.walkNode(ctx, child, childNS, childNS, false); err != nil {
				return err
			}
		}
	}

	if node.Missing {
		if isRoot {
			return &resolvetree.MissingDependencyError{Name: displayName}
		}
		return nil
	}

	location, err := entryresolve.Select(w.fs, node, displayName)(w.opts.Target)
	if err != nil {
		return err
	}
	text, err := w.fetcher.FetchText(ctx, location)
	if err != nil {
		var notFound *fetchcache.NotFoundError
		if errors.As(err, &notFound) {
			return &entryresolve.EntryNotFoundError{Name: displayName}
		}
		return &entryresolve.TypingsReadFailureError{Name: displayName, Err: err}
	}

	header := blockHeader(w.opts, location)

	if node.Ambient {
		w.blocks = append(w.blocks, Block{Ambient: true, Body: text, Header: header})
		return nil
	}

	parsed, err := declfile.Parse([]byte(text))
	if err != nil {
		return err
	}

	// The root's own entry is namespaced under its own basename, not a
	// fixed "root" segment (spec.md §4.H scenario S2: name "foobar", main
	// "file.d.ts" -> "foobar/file", not "foobar/root").
	primaryNS := baseNS
	if isRoot {
		primaryNS = w.opts.Name + "/" + submoduleName(path.Base(location), w.opts.Name)
	}

	visited := map[string]bool{location: true}
	body, inner, err := w.renderParsed(ctx, node, baseNS, location, []byte(text), parsed, visited)
	if err != nil {
		return err
	}

	w.blocks = append(w.blocks, inner...)
	w.blocks = append(w.blocks, Block{Namespace: primaryNS, Body: wrapModule(primaryNS, body), Header: header})

	if isRoot {
		alias := buildAlias(w.opts.Name, primaryNS, parsed.ExportAssignment != nil)
		alias.Header = header
		w.blocks = append(w.blocks, alias)
	}

	return nil
}
