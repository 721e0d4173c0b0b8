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
	"sync"

	"golang.org/x/sync/errgroup"

	"typings.dev/typings/fs"
	"typings.dev/typings/manifest"
	"typings.dev/typings/pathutil"
)

// findBowerEntry joins componentsDir with name, returning either a direct
// .d.ts file dependency (the same short-circuit npm gets) or a bower.json
// path beneath the joined directory.
func findBowerEntry(osfs fs.FileSystem, componentsDir, name string) (string, bool) {
	base, err := pathutil.JoinDir(componentsDir, name)
	if err != nil {
		return "", false
	}

	dtsPath := base + ".d.ts"
	if osfs.Exists(dtsPath) {
		return dtsPath, true
	}

	bowerJSON, err := pathutil.JoinDir(base, "bower.json")
	if err != nil {
		return "", false
	}
	if osfs.Exists(bowerJSON) {
		return bowerJSON, true
	}
	return "", false
}

// resolveBower reads the bower.json at location, resolves its own
// dependency map by joining the components directory with each dependency
// name, then applies a native-config overlay if one sits beside it.
func resolveBower(ctx context.Context, rc *rctx, location string, parent *Node, dev, ambient bool) (*Node, error) {
	if err := checkCycle(parent, location); err != nil {
		return nil, err
	}

	result, err := manifest.ReadBower(ctx, rc.opts.Fetcher, location)
	if err != nil {
		return nil, err
	}
	if result.Missing {
		return &Node{Src: location, Type: Bower, Missing: true, Parent: parent}, nil
	}

	b := result.Bower
	node := &Node{
		Src:            location,
		Type:           Bower,
		Name:           b.Name,
		Version:        b.Version,
		Main:           resolveEntryLocation(location, b.Main),
		Browser:        resolveBrowserField(location, b.Browser),
		Typings:        resolveEntryLocation(location, b.Typings),
		BrowserTypings: resolveEntryLocation(location, b.BrowserTypings),
		Parent:         parent,
	}

	if err := resolveBowerDepNames(ctx, rc, b.Dependencies, node, Dependencies); err != nil {
		return nil, err
	}
	if dev {
		if err := resolveBowerDepNames(ctx, rc, b.DevDependencies, node, DevDependencies); err != nil {
			return nil, err
		}
	}

	dir := pathutil.Dir(location)
	if err := applyNativeOverlay(ctx, rc, dir, node, dev, ambient); err != nil {
		return nil, err
	}

	return node, nil
}

func resolveBowerDepNames(ctx context.Context, rc *rctx, deps map[string]string, node *Node, kind DepKind) error {
	if len(deps) == 0 {
		return nil
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for name := range deps {
		g.Go(func() error {
			entry, ok := findBowerEntry(rc.opts.FS, rc.componentsDir, name)
			var child *Node
			if !ok {
				child = &Node{Src: "bower:" + name, Type: Bower, Missing: true, Parent: node}
			} else if pathutil.IsDefinition(entry) {
				child = fileNode(entry, "bower:"+name, node)
			} else {
				var err error
				child, err = resolveBower(gctx, rc, entry, node, false, false)
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
