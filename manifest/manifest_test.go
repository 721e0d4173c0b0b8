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
package manifest_test

import (
	"testing"

	"typings.dev/typings/manifest"
)

func TestParseNativeSingleDependencyCandidate(t *testing.T) {
	n, err := manifest.ParseNative([]byte(`{
		"name": "widgets",
		"main": "index.d.ts",
		"dependencies": { "lodash": "npm:lodash" }
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if n.Name != "widgets" || n.Main != "index.d.ts" {
		t.Fatalf("unexpected native manifest: %+v", n)
	}
	got := n.Dependencies["lodash"].Candidates
	if len(got) != 1 || got[0] != "npm:lodash" {
		t.Errorf("expected single candidate, got %v", got)
	}
}

func TestParseNativeOrderedDependencyCandidates(t *testing.T) {
	n, err := manifest.ParseNative([]byte(`{
		"dependencies": { "lodash": ["npm:lodash", "bower:lodash"] }
	}`))
	if err != nil {
		t.Fatal(err)
	}
	got := n.Dependencies["lodash"].Candidates
	if len(got) != 2 || got[0] != "npm:lodash" || got[1] != "bower:lodash" {
		t.Errorf("expected ordered candidates, got %v", got)
	}
}

func TestParseNativeRejectsWrongType(t *testing.T) {
	_, err := manifest.ParseNative([]byte(`{"main": 42}`))
	if err == nil {
		t.Fatal("expected validation error for non-string main")
	}
}

func TestParseNpmIgnoresUnknownFields(t *testing.T) {
	p, err := manifest.ParseNpm([]byte(`{
		"name": "widgets",
		"version": "1.0.0",
		"scripts": { "test": "echo ok" },
		"dependencies": { "lodash": "^4.0.0" }
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "widgets" || p.Dependencies["lodash"] != "^4.0.0" {
		t.Fatalf("unexpected npm manifest: %+v", p)
	}
}

func TestParseBowerBrowserObjectRemap(t *testing.T) {
	b, err := manifest.ParseBower([]byte(`{
		"name": "widgets",
		"browser": { "./node.js": "./browser.js" }
	}`))
	if err != nil {
		t.Fatal(err)
	}
	remap, ok := manifest.BrowserMap(b.Browser)
	if !ok {
		t.Fatal("expected browser object to parse as a remap")
	}
	if remap["./node.js"] != "./browser.js" {
		t.Errorf("unexpected remap: %+v", remap)
	}
}

func TestParseBowerRCStripsLineComments(t *testing.T) {
	rc, err := manifest.ParseBowerRC([]byte(`{
		// this is a comment .bowerrc authors sometimes leave in
		"directory": "lib"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if rc.Directory != "lib" {
		t.Errorf("got directory %q", rc.Directory)
	}
}

func TestParseBowerRCDefaultsDirectory(t *testing.T) {
	rc, err := manifest.ParseBowerRC([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if rc.Directory != manifest.DefaultBowerComponentsDir {
		t.Errorf("got directory %q", rc.Directory)
	}
}

func TestCanonicalizeJSONIgnoresKeyOrderAndWhitespace(t *testing.T) {
	a, err := manifest.CanonicalizeJSON([]byte(`{"b": 1, "a": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := manifest.CanonicalizeJSON([]byte(`{
		"a": 2,
		"b": 1
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("expected canonical forms to match, got %q vs %q", a, b)
	}
}

func TestCanonicalizeJSONRejectsInvalidJSON(t *testing.T) {
	if _, err := manifest.CanonicalizeJSON([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
