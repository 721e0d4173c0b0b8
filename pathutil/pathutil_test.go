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
package pathutil_test

import (
	"testing"

	"typings.dev/typings/pathutil"
)

func TestIsHTTP(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://example.com/x.json", true},
		{"https://example.com/x.json", true},
		{"/abs/path", false},
		{"./rel/path", false},
		{"ftp://example.com", false},
	}
	for _, tc := range tests {
		if got := pathutil.IsHTTP(tc.in); got != tc.want {
			t.Errorf("IsHTTP(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsDefinition(t *testing.T) {
	if !pathutil.IsDefinition("foo.d.ts") {
		t.Error("expected foo.d.ts to be a definition file")
	}
	if pathutil.IsDefinition("foo.js") {
		t.Error("expected foo.js to not be a definition file")
	}
}

func TestToDefinition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lodash", "lodash.d.ts"},
		{"lodash.d.ts", "lodash.d.ts"},
		{"@scope/name", "@scope/name.d.ts"},
	}
	for _, tc := range tests {
		if got := pathutil.ToDefinition(tc.in); got != tc.want {
			t.Errorf("ToDefinition(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJoinLocationAbsoluteChild(t *testing.T) {
	got, err := pathutil.JoinLocation("/a/b/typings.json", "/etc/other.d.ts")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/etc/other.d.ts" {
		t.Errorf("got %q, want absolute child returned unchanged", got)
	}
}

func TestJoinLocationHTTPParent(t *testing.T) {
	got, err := pathutil.JoinLocation("http://example.com/pkg/typings.json", "index.d.ts")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://example.com/pkg/index.d.ts" {
		t.Errorf("got %q", got)
	}
}

func TestJoinLocationFilesystemParent(t *testing.T) {
	got, err := pathutil.JoinLocation("/proj/typings.json", "./typed.d.ts")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/proj/typed.d.ts" {
		t.Errorf("got %q", got)
	}
}

func TestJoinLocationHTTPChildOverridesParent(t *testing.T) {
	got, err := pathutil.JoinLocation("/proj/typings.json", "http://other.example/x.d.ts")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://other.example/x.d.ts" {
		t.Errorf("got %q", got)
	}
}

func TestJoinDirBowerComponents(t *testing.T) {
	got, err := pathutil.JoinDir("/proj/bower_components", "jquery")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/proj/bower_components/jquery" {
		t.Errorf("got %q", got)
	}
}
