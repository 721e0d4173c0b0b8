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
package depstring_test

import (
	"testing"

	"typings.dev/typings/depstring"
)

func TestParseNpm(t *testing.T) {
	d, err := depstring.Parse("npm:lodash")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != depstring.Npm || d.Location != "lodash" {
		t.Errorf("got %+v", d)
	}
}

func TestParseBower(t *testing.T) {
	d, err := depstring.Parse("bower:jquery")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != depstring.Bower || d.Location != "jquery" {
		t.Errorf("got %+v", d)
	}
}

func TestParseGithubWithRef(t *testing.T) {
	d, err := depstring.Parse("github:foo/bar#v1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != depstring.Github || d.Owner != "foo" || d.Repo != "bar" || d.Ref != "v1.2.3" {
		t.Errorf("got %+v", d)
	}
	want := "https://raw.githubusercontent.com/foo/bar/v1.2.3/"
	if d.Location != want {
		t.Errorf("got location %q, want %q", d.Location, want)
	}
}

func TestParseGithubWithoutRef(t *testing.T) {
	d, err := depstring.Parse("github:foo/bar")
	if err != nil {
		t.Fatal(err)
	}
	if d.Ref != "" {
		t.Errorf("expected empty ref, got %q", d.Ref)
	}
	want := "https://raw.githubusercontent.com/foo/bar/HEAD/"
	if d.Location != want {
		t.Errorf("got location %q, want %q", d.Location, want)
	}
}

func TestParseGithubMissingSlashIsError(t *testing.T) {
	_, err := depstring.Parse("github:justaname")
	if err == nil {
		t.Fatal("expected error for malformed github dependency")
	}
}

func TestParseFileScheme(t *testing.T) {
	d, err := depstring.Parse("file:./vendor/thing.d.ts")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != depstring.File || d.Location != "./vendor/thing.d.ts" {
		t.Errorf("got %+v", d)
	}
}

func TestParseBareURL(t *testing.T) {
	d, err := depstring.Parse("https://example.com/typings.json")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != depstring.HTTP {
		t.Errorf("got %+v", d)
	}
}

func TestParseBarePathDefaultsToFile(t *testing.T) {
	d, err := depstring.Parse("../sibling-project")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != depstring.File || d.Location != "../sibling-project" {
		t.Errorf("got %+v", d)
	}
}
