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

// Package compiler wires the resolve, entry-selection, declaration
// parsing, namespacing, and assembly stages into the single operation
// spec.md §4 describes end to end: a project directory in, a {main,
// browser} pair of compiled declaration texts out.
package compiler

import (
	"context"

	"typings.dev/typings/assemble"
	"typings.dev/typings/entryresolve"
	"typings.dev/typings/fetchcache"
	"typings.dev/typings/fs"
	"typings.dev/typings/namespace"
	"typings.dev/typings/resolvetree"
)

// Options configures one Compile call.
type Options struct {
	Cwd     string
	Dev     bool
	Ambient bool

	FS      fs.FileSystem
	Fetcher *fetchcache.Fetcher
	Logger  resolvetree.Logger

	// Name overrides the compiled root namespace; if empty, the resolved
	// tree's own name is used, falling back to "package".
	Name string

	Meta            bool
	CompilerVersion string
}

// Result holds both compiled outputs plus the resolved tree they were
// produced from, for callers that want the raw tree too.
type Result struct {
	Main    string
	Browser string
	Tree    *resolvetree.Node
}

// Compile resolves opts.Cwd's dependency tree and produces its {main,
// browser} declaration output (spec.md §4, the core's whole data flow).
func Compile(ctx context.Context, opts Options) (*Result, error) {
	tree, err := resolvetree.Resolve(ctx, resolvetree.Options{
		Cwd:     opts.Cwd,
		Dev:     opts.Dev,
		Ambient: opts.Ambient,
		FS:      opts.FS,
		Fetcher: opts.Fetcher,
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = tree.Name
	}
	if name == "" {
		name = "package"
	}

	mainOpts := namespace.Options{
		Name:            name,
		Target:          entryresolve.Main,
		Meta:            opts.Meta,
		CompilerVersion: opts.CompilerVersion,
		Cwd:             opts.Cwd,
	}
	browserOpts := mainOpts
	browserOpts.Target = entryresolve.Browser

	mainBlocks, err := namespace.Compile(ctx, opts.Fetcher, opts.FS, tree, mainOpts)
	if err != nil {
		return nil, err
	}
	browserBlocks, err := namespace.Compile(ctx, opts.Fetcher, opts.FS, tree, browserOpts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Main:    assemble.Join(mainBlocks),
		Browser: assemble.Join(browserBlocks),
		Tree:    tree,
	}, nil
}
