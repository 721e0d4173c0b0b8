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
package entryresolve_test

import (
	"testing"

	"typings.dev/typings/entryresolve"
	"typings.dev/typings/internal/mapfs"
	"typings.dev/typings/resolvetree"
)

func TestSelectPrefersBrowserTypingsForBrowserTarget(t *testing.T) {
	mfs := mapfs.New()
	node := &resolvetree.Node{Typings: "index.d.ts", BrowserTypings: "browser.d.ts"}

	loc, err := entryresolve.Select(mfs, node, "widget")(entryresolve.Browser)
	if err != nil {
		t.Fatal(err)
	}
	if loc != "browser.d.ts" {
		t.Errorf("got %q", loc)
	}
}

func TestSelectFallsBackToTypingsForMainTarget(t *testing.T) {
	mfs := mapfs.New()
	node := &resolvetree.Node{Typings: "index.d.ts", BrowserTypings: "browser.d.ts"}

	loc, err := entryresolve.Select(mfs, node, "widget")(entryresolve.Main)
	if err != nil {
		t.Fatal(err)
	}
	if loc != "index.d.ts" {
		t.Errorf("got %q", loc)
	}
}

func TestSelectMainAsDTSPath(t *testing.T) {
	mfs := mapfs.New()
	node := &resolvetree.Node{Main: "types/index.d.ts"}

	loc, err := entryresolve.Select(mfs, node, "widget")(entryresolve.Main)
	if err != nil {
		t.Fatal(err)
	}
	if loc != "types/index.d.ts" {
		t.Errorf("got %q", loc)
	}
}

func TestSelectSubstitutesExtensionWhenSiblingExists(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/index.d.ts", "export const x: number;", 0o644)
	node := &resolvetree.Node{Main: "/proj/index.js"}

	loc, err := entryresolve.Select(mfs, node, "widget")(entryresolve.Main)
	if err != nil {
		t.Fatal(err)
	}
	if loc != "/proj/index.d.ts" {
		t.Errorf("got %q", loc)
	}
}

func TestSelectEntryNotFoundWhenSiblingMissing(t *testing.T) {
	mfs := mapfs.New()
	node := &resolvetree.Node{Main: "/proj/index.js"}

	_, err := entryresolve.Select(mfs, node, "widget")(entryresolve.Main)
	var notFound *entryresolve.EntryNotFoundError
	if err == nil {
		t.Fatal("expected EntryNotFoundError")
	}
	if _, ok := err.(*entryresolve.EntryNotFoundError); !ok {
		t.Errorf("got %T: %v", err, err)
	}
	_ = notFound
}

func TestSelectEntryResolutionErrorWhenNoFieldsSet(t *testing.T) {
	mfs := mapfs.New()
	node := &resolvetree.Node{}

	_, err := entryresolve.Select(mfs, node, "main")(entryresolve.Main)
	if _, ok := err.(*entryresolve.EntryResolutionError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
	if err.Error() != `Unable to resolve entry ".d.ts" file for "main"` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestSelectBrowserFieldOverridesMainForBrowserTarget(t *testing.T) {
	mfs := mapfs.New()
	node := &resolvetree.Node{Main: "index.js", Browser: "browser.d.ts"}

	loc, err := entryresolve.Select(mfs, node, "widget")(entryresolve.Browser)
	if err != nil {
		t.Fatal(err)
	}
	if loc != "browser.d.ts" {
		t.Errorf("got %q", loc)
	}
}
