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

	"typings.dev/typings/depstring"
	"typings.dev/typings/manifest"
	"typings.dev/typings/pathutil"
)

// resolveNative reads the native typings.json manifest at location and
// builds its node, recursively resolving the dependency maps selected by
// dev/ambient (spec.md §4.E).
func resolveNative(ctx context.Context, rc *rctx, location string, parent *Node, dev, ambient bool) (*Node, error) {
	if err := checkCycle(parent, location); err != nil {
		return nil, err
	}

	result, err := manifest.ReadNative(ctx, rc.opts.Fetcher, location)
	if err != nil {
		return nil, err
	}
	if result.Missing {
		return &Node{Src: location, Type: Native, Missing: true, Parent: parent}, nil
	}

	n := result.Native
	node := &Node{
		Src:            location,
		Type:           Native,
		Ambient:        n.Ambient,
		Name:           n.Name,
		Main:           resolveEntryLocation(location, n.Main),
		Browser:        resolveBrowserField(location, n.Browser),
		Typings:        resolveEntryLocation(location, n.Typings),
		BrowserTypings: resolveEntryLocation(location, n.BrowserTypings),
		Parent:         parent,
	}

	if err := expandNativeNode(ctx, rc, node, location, n, dev, ambient); err != nil {
		return nil, err
	}
	return node, nil
}

// expandNativeNode populates node's dependency maps from a parsed native
// manifest, honoring the dev/ambient selection rules from spec.md §4.E.
func expandNativeNode(ctx context.Context, rc *rctx, node *Node, location string, n *manifest.Native, dev, ambient bool) error {
	kinds := []struct {
		kind DepKind
		m    manifest.DependencyMap
		want bool
	}{
		{Dependencies, n.Dependencies, true},
		{DevDependencies, n.DevDependencies, dev},
		{AmbientDependencies, n.AmbientDependencies, ambient},
		{AmbientDevDependencies, n.AmbientDevDependencies, dev && ambient},
	}

	for _, k := range kinds {
		if !k.want || len(k.m) == 0 {
			continue
		}
		resolved, err := expandNativeDepMap(ctx, rc, k.m, location, node)
		if err != nil {
			return err
		}
		for name, child := range resolved {
			node.SetDep(k.kind, name, child)
		}
	}
	return nil
}

// expandNativeDepMap resolves every entry of a native-style dependency map
// concurrently. Each value may carry several ordered candidate strings
// (spec.md B1); the first non-missing candidate is kept.
func expandNativeDepMap(ctx context.Context, rc *rctx, depMap manifest.DependencyMap, manifestLocation string, parent *Node) (map[string]*Node, error) {
	results := make(map[string]*Node, len(depMap))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for name, value := range depMap {
		g.Go(func() error {
			child, err := resolveFirstCandidate(gctx, rc, value.Candidates, manifestLocation, parent)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = child
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveFirstCandidate tries each short-form dependency string in order,
// accepting the first candidate that does not resolve to a missing node.
func resolveFirstCandidate(ctx context.Context, rc *rctx, candidates []string, manifestLocation string, parent *Node) (*Node, error) {
	var last *Node
	for _, raw := range candidates {
		child, err := resolveDependencyString(ctx, rc, raw, manifestLocation, parent)
		if err != nil {
			return nil, err
		}
		last = child
		if !child.Missing {
			return child, nil
		}
	}
	return last, nil
}

// resolveDependencyString dispatches a short-form dependency string
// (spec.md §4.D) to the matching ecosystem lookup.
func resolveDependencyString(ctx context.Context, rc *rctx, raw, manifestLocation string, parent *Node) (*Node, error) {
	d, err := depstring.Parse(raw)
	if err != nil {
		return nil, err
	}

	switch d.Type {
	case depstring.Npm:
		dir := pathutil.Dir(manifestLocation)
		entry, ok := findNodeModulesEntry(rc.opts.FS, dir, d.Location)
		if !ok {
			return &Node{Src: "npm:" + d.Location, Type: Npm, Missing: true, Parent: parent, Raw: raw}, nil
		}
		if pathutil.IsDefinition(entry) {
			return fileNode(entry, raw, parent), nil
		}
		return resolveNpm(ctx, rc, entry, parent, false, false)

	case depstring.Bower:
		entry, ok := findBowerEntry(rc.opts.FS, rc.componentsDir, d.Location)
		if !ok {
			return &Node{Src: "bower:" + d.Location, Type: Bower, Missing: true, Parent: parent, Raw: raw}, nil
		}
		if pathutil.IsDefinition(entry) {
			return fileNode(entry, raw, parent), nil
		}
		return resolveBower(ctx, rc, entry, parent, false, false)

	case depstring.Github:
		manifestURL := d.Location + nativeConfigFilename
		return resolveNative(ctx, rc, manifestURL, parent, false, false)

	case depstring.File:
		loc, err := pathutil.JoinLocation(manifestLocation, d.Location)
		if err != nil {
			return nil, err
		}
		return resolveFileOrNativeLocation(ctx, rc, loc, raw, parent)

	case depstring.HTTP:
		return resolveFileOrNativeLocation(ctx, rc, d.Location, raw, parent)

	default:
		return &Node{Src: raw, Type: File, Missing: true, Parent: parent, Raw: raw}, nil
	}
}

// resolveFileOrNativeLocation treats loc as a direct .d.ts file dependency
// (B2) if it already names one, otherwise as a directory containing a
// native typings.json.
func resolveFileOrNativeLocation(ctx context.Context, rc *rctx, loc, raw string, parent *Node) (*Node, error) {
	if pathutil.IsDefinition(loc) {
		return fileNode(loc, raw, parent), nil
	}
	configLoc := loc
	if pathutil.IsHTTP(loc) {
		joined, err := pathutil.JoinDir(loc, nativeConfigFilename)
		if err != nil {
			return nil, err
		}
		configLoc = joined
	} else {
		configLoc = filepath.Join(loc, nativeConfigFilename)
	}
	return resolveNative(ctx, rc, configLoc, parent, false, false)
}

func fileNode(location, raw string, parent *Node) *Node {
	return &Node{
		Src:            location,
		Type:           File,
		Main:           location,
		Typings:        location,
		BrowserTypings: location,
		Raw:            raw,
		Parent:         parent,
	}
}

// checkCycle implements invariant I1: before reading a manifest whose Src
// is location, walk the parent chain and fail if it reappears.
func checkCycle(parent *Node, location string) error {
	chain := []string{location}
	for p := parent; p != nil; p = p.Parent {
		chain = append(chain, p.Src)
		if p.Src == location {
			return &CircularDependencyError{Chain: chain}
		}
	}
	return nil
}
