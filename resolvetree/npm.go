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
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"typings.dev/typings/fs"
	"typings.dev/typings/manifest"
	"typings.dev/typings/pathutil"
)

// findNodeModulesEntry searches upward from startDir for either
// node_modules/name/package.json or node_modules/name.d.ts, matching
// spec.md §4.E's ".d.ts short-circuit" clause for npm dependencies.
func findNodeModulesEntry(osfs fs.FileSystem, startDir, name string) (string, bool) {
	dir := startDir
	for {
		base := filepath.Join(dir, "node_modules", name)

		dtsPath := base + ".d.ts"
		if osfs.Exists(dtsPath) {
			return dtsPath, true
		}

		pkgJSON := filepath.Join(base, "package.json")
		if osfs.Exists(pkgJSON) {
			return pkgJSON, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// resolveNpm reads the package.json at location, resolves its own
// dependency map via node_modules search, then applies a native-config
// overlay if one sits beside it (spec.md §4.E).
func resolveNpm(ctx context.Context, rc *rctx, location string, parent *Node, dev, ambient bool) (*Node, error) {
	if err := checkCycle(parent, location); err != nil {
		return nil, err
	}

	result, err := manifest.ReadNpm(ctx, rc.opts.Fetcher, location)
	if err != nil {
		return nil, err
	}
	if result.Missing {
		return &Node{Src: location, Type: Npm, Missing: true, Parent: parent}, nil
	}

	p := result.Npm
	node := &Node{
		Src:            location,
		Type:           Npm,
		Name:           p.Name,
		Version:        p.Version,
		Main:           resolveEntryLocation(location, p.Main),
		Browser:        resolveBrowserField(location, p.Browser),
		Typings:        resolveEntryLocation(location, p.Typings),
		BrowserTypings: resolveEntryLocation(location, p.BrowserTypings),
		Parent:         parent,
	}

	dir := pathutil.Dir(location)

	names := make(map[string]struct{}, len(p.Dependencies)+len(p.OptionalDependencies))
	for name := range p.Dependencies {
		names[name] = struct{}{}
	}
	// optionalDependencies overrides dependencies on key collision
	// (spec.md §9 open-question resolution); since only the name is used
	// for the node_modules search, the override has no observable effect
	// beyond confirming the name participates in resolution.
	for name := range p.OptionalDependencies {
		names[name] = struct{}{}
	}
	if err := resolveNpmDepNames(ctx, rc, names, dir, node, Dependencies); err != nil {
		return nil, err
	}

	if dev {
		devNames := make(map[string]struct{}, len(p.DevDependencies))
		for name := range p.DevDependencies {
			devNames[name] = struct{}{}
		}
		if err := resolveNpmDepNames(ctx, rc, devNames, dir, node, DevDependencies); err != nil {
			return nil, err
		}
	}

	if err := applyNativeOverlay(ctx, rc, dir, node, dev, ambient); err != nil {
		return nil, err
	}

	return node, nil
}

func resolveNpmDepNames(ctx context.Context, rc *rctx, names map[string]struct{}, dir string, node *Node, kind DepKind) error {
	if len(names) == 0 {
		return nil
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for name := range names {
		g.Go(func() error {
			_ = gctx
			entry, ok := findNodeModulesEntry(rc.opts.FS, dir, name)
			var child *Node
			if !ok {
				child = &Node{Src: "npm:" + name, Type: Npm, Missing: true, Parent: node}
			} else if pathutil.IsDefinition(entry) {
				child = fileNode(entry, "npm:"+name, node)
			} else {
				var err error
				child, err = resolveNpm(gctx, rc, entry, node, false, false)
				if err != nil {
					return err
				}
			}
			mu.Lock()
			node.SetDep(kind, name, child)
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}
