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

package declfile

import (
	"fmt"
	"regexp"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// SpecifierKind distinguishes the syntactic form a module specifier was
// found in.
type SpecifierKind int

const (
	ImportFrom SpecifierKind = iota
	ExportFrom
	RequireImport
)

// Specifier is a quoted module name found inside an import/export/require
// form, with the byte range of the quoted string literal itself (quotes
// included) so a rewriter can replace it in place.
type Specifier struct {
	Kind      SpecifierKind
	Name      string
	StartByte uint
	EndByte   uint
}

// ModuleBlock is a top-level `declare module "NAME" { ... }` construct.
type ModuleBlock struct {
	Name      string
	StartByte uint // the whole declaration, "declare" through closing brace
	EndByte   uint

	// BodyStartByte/BodyEndByte span the region between (and excluding)
	// the braces, empty if no braced body was found.
	BodyStartByte uint
	BodyEndByte   uint
}

// ReferenceKind distinguishes the two triple-slash reference directive
// forms spec.md §4.G recognizes.
type ReferenceKind int

const (
	ReferencePath ReferenceKind = iota
	ReferenceTypes
)

// Reference is a `/// <reference path="..."/>` or `/// <reference
// types="..."/>` directive. These are line comments, not real grammar
// nodes a TypeScript parser exposes structured access to, so they are
// recovered with a regular expression over the raw text instead of a
// tree-sitter query.
type Reference struct {
	Kind      ReferenceKind
	Value     string
	StartByte uint
	EndByte   uint
}

// ExportAssignment is an `export = expr;` statement, preserved verbatim
// but recognized so the namespacing rewriter can wrap the containing
// block correctly (spec.md §4.G, §4.H "export =" handling).
type ExportAssignment struct {
	StartByte uint
	EndByte   uint
}

// File is the tokenized result of parsing one declaration file's content.
type File struct {
	Content []byte

	Modules    []ModuleBlock
	Specifiers []Specifier
	References []Reference

	ExportAssignment *ExportAssignment
}

var referenceDirectivePattern = regexp.MustCompile(`(?m)^[ \t]*///\s*<reference\s+(path|types)\s*=\s*"([^"]*)"\s*/>[ \t]*\r?\n?`)

// Parse tokenizes content, identifying top-level declare-module blocks,
// import/export/require module specifiers, reference directives, and an
// export-equals statement if present.
func Parse(content []byte) (*File, error) {
	qs, err := loadedQueries()
	if err != nil {
		return nil, err
	}

	parser := getParser()
	defer putParser(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("declfile: failed to parse content")
	}
	defer tree.Close()

	f := &File{Content: content}

	collectModules(qs[queryModules], tree.RootNode(), content, f)
	collectSpecifiers(qs[querySpecifiers], tree.RootNode(), content, f)
	collectExportAssignment(qs[queryExportAssignment], tree.RootNode(), content, f)
	collectReferences(content, f)

	return f, nil
}

func collectModules(query *ts.Query, root ts.Node, content []byte, f *File) {
	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	names := query.CaptureNames()
	matches := cursor.Matches(query, root, content)
	for {
		m := matches.Next()
		if m == nil {
			break
		}

		block := ModuleBlock{}
		for _, c := range m.Captures {
			switch names[c.Index] {
			case "module.block":
				block.StartByte = c.Node.StartByte()
				block.EndByte = c.Node.EndByte()
				if body, ok := findBracedBody(c.Node); ok {
					block.BodyStartByte = body.StartByte() + 1
					block.BodyEndByte = body.EndByte() - 1
				}
			case "module.name":
				block.Name = unquote(c.Node.Utf8Text(content))
			}
		}
		if block.Name != "" {
			f.Modules = append(f.Modules, block)
		}
	}
}

func collectSpecifiers(query *ts.Query, root ts.Node, content []byte, f *File) {
	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	names := query.CaptureNames()
	matches := cursor.Matches(query, root, content)
	for {
		m := matches.Next()
		if m == nil {
			break
		}
		for _, c := range m.Captures {
			kind, ok := specifierKindFor(names[c.Index])
			if !ok {
				continue
			}
			f.Specifiers = append(f.Specifiers, Specifier{
				Kind:      kind,
				Name:      unquote(c.Node.Utf8Text(content)),
				StartByte: c.Node.StartByte(),
				EndByte:   c.Node.EndByte(),
			})
		}
	}
}

func specifierKindFor(captureName string) (SpecifierKind, bool) {
	switch captureName {
	case "import.source":
		return ImportFrom, true
	case "export.source":
		return ExportFrom, true
	case "require.source":
		return RequireImport, true
	default:
		return 0, false
	}
}

func collectExportAssignment(query *ts.Query, root ts.Node, content []byte, f *File) {
	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, content)
	if m := matches.Next(); m != nil && len(m.Captures) > 0 {
		node := m.Captures[0].Node
		f.ExportAssignment = &ExportAssignment{StartByte: node.StartByte(), EndByte: node.EndByte()}
	}
}

// findBracedBody locates the first "statement_block"-shaped named child
// of node (the { ... } body of a module declaration).
func findBracedBody(node ts.Node) (ts.Node, bool) {
	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := node.NamedChild(i)
		if strings.Contains(child.Kind(), "block") {
			return child, true
		}
	}
	return ts.Node{}, false
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func collectReferences(content []byte, f *File) {
	matches := referenceDirectivePattern.FindAllSubmatchIndex(content, -1)
	for _, m := range matches {
		kind := ReferencePath
		if string(content[m[2]:m[3]]) == "types" {
			kind = ReferenceTypes
		}
		f.References = append(f.References, Reference{
			Kind:      kind,
			Value:     string(content[m[4]:m[5]]),
			StartByte: uint(m[0]),
			EndByte:   uint(m[1]),
		})
	}
}
