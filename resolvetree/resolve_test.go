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
package resolvetree_test

import (
	"context"
	"testing"

	"typings.dev/typings/fetchcache"
	"typings.dev/typings/internal/mapfs"
	"typings.dev/typings/resolvetree"
)

func newOptions(t *testing.T, mfs *mapfs.MapFileSystem, cwd string) resolvetree.Options {
	t.Helper()
	f, err := fetchcache.New(mfs, fetchcache.Options{CacheDir: mfs.TempDir() + "/cache"})
	if err != nil {
		t.Fatal(err)
	}
	return resolvetree.Options{Cwd: cwd, FS: mfs, Fetcher: f}
}

func TestResolveAllThreeEcosystemsMissingYieldsMissingRoot(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/proj", 0o755)
	opts := newOptions(t, mfs, "/proj")

	root, err := resolvetree.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !root.Missing {
		t.Error("expected missing root when no manifest exists in any ecosystem")
	}
}

func TestResolveNativeOnlyRoot(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/typings.json", `{"name":"proj","main":"index.d.ts"}`, 0o644)
	opts := newOptions(t, mfs, "/proj")

	root, err := resolvetree.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if root.Missing {
		t.Fatal("did not expect missing root")
	}
	if root.Name != "proj" || root.Main != "/proj/index.d.ts" {
		t.Errorf("unexpected root: %+v", root)
	}
}

func TestResolveNativeOverlayWinsEntryFields(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/package.json", `{"name":"proj","main":"index.js","typings":"index.d.ts"}`, 0o644)
	mfs.AddFile("/proj/typings.json", `{"typings":"overlay.d.ts"}`, 0o644)
	opts := newOptions(t, mfs, "/proj")

	root, err := resolvetree.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if root.Typings != "/proj/overlay.d.ts" {
		t.Errorf("expected native overlay to win, got typings=%q", root.Typings)
	}
}

func TestResolveNativeAmbientFlagSurvivesMerge(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/typings.json", `{"name":"proj","ambient":true,"main":"global.d.ts"}`, 0o644)
	opts := newOptions(t, mfs, "/proj")

	root, err := resolvetree.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !root.Ambient {
		t.Error("expected the native manifest's ambient:true to survive the three-ecosystem merge")
	}
}

func TestResolveDependencyDTSShortCircuit(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/package.json", `{"name":"proj"}`, 0o644)
	mfs.AddFile("/proj/node_modules/widget.d.ts", `export const x: number;`, 0o644)
	mfs.AddFile("/proj/typings.json", `{"dependencies": {"widget": "npm:widget"}}`, 0o644)
	opts := newOptions(t, mfs, "/proj")

	root, err := resolvetree.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	child, ok := root.DepMap(resolvetree.Dependencies)["widget"]
	if !ok {
		t.Fatal("expected widget dependency in merged root")
	}
	if child.Type != resolvetree.File || child.Missing {
		t.Errorf("expected a direct file dependency, got %+v", child)
	}
}

func TestResolveDevDependenciesRequireDevOption(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/typings.json", `{
		"dependencies": {"a": "npm:a"},
		"devDependencies": {"b": "npm:b"}
	}`, 0o644)
	mfs.AddFile("/proj/node_modules/a.d.ts", `export const a: number;`, 0o644)
	mfs.AddFile("/proj/node_modules/b.d.ts", `export const b: number;`, 0o644)

	optsNoDev := newOptions(t, mfs, "/proj")
	root, err := resolvetree.Resolve(context.Background(), optsNoDev)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := root.DepMap(resolvetree.DevDependencies)["b"]; ok {
		t.Error("did not expect devDependencies without Dev option")
	}

	optsDev := newOptions(t, mfs, "/proj")
	optsDev.Dev = true
	root, err = resolvetree.Resolve(context.Background(), optsDev)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := root.DepMap(resolvetree.DevDependencies)["b"]; !ok {
		t.Error("expected devDependencies with Dev option")
	}
}

func TestResolveCandidateListFirstSuccessWins(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/typings.json", `{
		"dependencies": {"widget": ["npm:missing-widget", "npm:widget"]}
	}`, 0o644)
	mfs.AddFile("/proj/node_modules/widget.d.ts", `export const x: number;`, 0o644)
	opts := newOptions(t, mfs, "/proj")

	root, err := resolvetree.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	child := root.DepMap(resolvetree.Dependencies)["widget"]
	if child == nil || child.Missing {
		t.Fatalf("expected second candidate to succeed, got %+v", child)
	}
}
