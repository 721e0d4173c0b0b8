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
package declfile_test

import (
	"testing"

	"typings.dev/typings/declfile"
)

func TestParseImportExportSpecifiers(t *testing.T) {
	src := []byte(`
import { foo } from "./foo";
export { bar } from "bar";
`)
	f, err := declfile.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d: %+v", len(f.Specifiers), f.Specifiers)
	}
}

func TestParseDeclareModuleBlock(t *testing.T) {
	src := []byte(`
declare module "widget" {
  export function create(): void;
}
`)
	f, err := declfile.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Modules) != 1 || f.Modules[0].Name != "widget" {
		t.Fatalf("expected one module block named widget, got %+v", f.Modules)
	}
}

func TestParseReferenceDirectives(t *testing.T) {
	src := []byte("/// <reference path=\"./other.d.ts\" />\n/// <reference types=\"node\" />\nexport const x: number;\n")
	f, err := declfile.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.References) != 2 {
		t.Fatalf("expected 2 references, got %d: %+v", len(f.References), f.References)
	}
	if f.References[0].Kind != declfile.ReferencePath || f.References[0].Value != "./other.d.ts" {
		t.Errorf("unexpected first reference: %+v", f.References[0])
	}
	if f.References[1].Kind != declfile.ReferenceTypes || f.References[1].Value != "node" {
		t.Errorf("unexpected second reference: %+v", f.References[1])
	}
}

func TestParseExportAssignment(t *testing.T) {
	src := []byte(`
function foo(): void {}
module foo {
  export interface Bar {}
}
export = foo;
`)
	f, err := declfile.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if f.ExportAssignment == nil {
		t.Fatal("expected an export assignment to be recognized")
	}
}
