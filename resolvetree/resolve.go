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

	"golang.org/x/sync/errgroup"

	"typings.dev/typings/manifest"
)

// Resolve is the hardest component's entry point (spec.md §4.E): it
// concurrently resolves three subtrees at opts.Cwd — one per ecosystem —
// then merges them into a single root node.
func Resolve(ctx context.Context, opts Options) (*Node, error) {
	log := opts.logger()

	componentsDir, bowerManifestLocation := discoverBower(opts)
	npmManifestLocation, hasNpm := findUpward(opts.FS, opts.Cwd, "package.json")
	nativeManifestLocation, hasNative := findUpward(opts.FS, opts.Cwd, nativeConfigFilename)

	rc := &rctx{opts: opts, componentsDir: componentsDir}

	var bowerRoot, npmRoot, nativeRoot *Node
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if bowerManifestLocation == "" {
			bowerRoot = &Node{Missing: true, Type: Bower}
			return nil
		}
		log.Debug("resolving bower root at %s", bowerManifestLocation)
		n, err := resolveBower(gctx, rc, bowerManifestLocation, nil, opts.Dev, opts.Ambient)
		bowerRoot = n
		return err
	})

	g.Go(func() error {
		if !hasNpm {
			npmRoot = &Node{Missing: true, Type: Npm}
			return nil
		}
		log.Debug("resolving npm root at %s", npmManifestLocation)
		n, err := resolveNpm(gctx, rc, npmManifestLocation, nil, opts.Dev, opts.Ambient)
		npmRoot = n
		return err
	})

	g.Go(func() error {
		if !hasNative {
			nativeRoot = &Node{Missing: true, Type: Native}
			return nil
		}
		log.Debug("resolving native root at %s", nativeManifestLocation)
		n, err := resolveNative(gctx, rc, nativeManifestLocation, nil, opts.Dev, opts.Ambient)
		nativeRoot = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	root := mergeRoots(bowerRoot, npmRoot, nativeRoot)
	if root.Missing {
		log.Warning("no manifest found in any ecosystem starting from %s", opts.Cwd)
	}
	return root, nil
}

// discoverBower walks upward from opts.Cwd for bower.json, then reads the
// neighboring .bowerrc (if any) for the components directory.
func discoverBower(opts Options) (componentsDir, manifestLocation string) {
	location, ok := findUpward(opts.FS, opts.Cwd, "bower.json")
	if !ok {
		return filepath.Join(opts.Cwd, manifest.DefaultBowerComponentsDir), ""
	}

	rc, err := manifest.ReadBowerRC(context.Background(), opts.Fetcher, location)
	dir := filepath.Dir(location)
	if err != nil || rc == nil {
		return filepath.Join(dir, manifest.DefaultBowerComponentsDir), location
	}
	return filepath.Join(dir, rc.Directory), location
}
