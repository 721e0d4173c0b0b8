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

package namespace

import (
	"context"
	"sort"
	"strings"

	"typings.dev/typings/declfile"
	"typings.dev/typings/entryresolve"
	"typings.dev/typings/manifest"
	"typings.dev/typings/pathutil"
	"typings.dev/typings/resolvetree"
)

// textEdit replaces content[Start:End] with Replacement ("" excises the
// range entirely, used to lift a nested declare-module block out of its
// enclosing body).
type textEdit struct {
	Start, End  uint
	Replacement string
}

// applyEdits renders content[start:end] with edits (given in absolute
// byte offsets) applied in order, trimming the result.
func applyEdits(content []byte, start, end uint, edits []textEdit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })

	var b strings.Builder
	cursor := start
	for _, e := range edits {
		if e.Start < cursor || e.End > end {
			continue
		}
		b.Write(content[cursor:e.Start])
		b.WriteString(e.Replacement)
		cursor = e.End
	}
	b.Write(content[cursor:end])
	return strings.TrimSpace(b.String())
}

// renderParsed rewrites one file's worth of already-parsed content into
// the node's own primary body plus any inline submodule blocks it
// contains, recursively expanding relative specifiers into further
// blocks. baseNS is the namespace this file's own content (outside any
// nested declare-module block) is assigned.
func (w *walker) renderParsed(ctx context.Context, node *resolvetree.Node, baseNS, location string, content []byte, parsed *declfile.File, visited map[string]bool) (string, []Block, error) {
	var inner []Block
	var edits []textEdit

	for _, s := range parsed.Specifiers {
		if _, ok := containingModule(parsed.Modules, s.StartByte); ok {
			continue // rewritten as part of its owning module block below
		}
		replacement, extra, err := w.resolveSpecifier(ctx, node, baseNS, location, s.Name, visited)
		if err != nil {
			return "", nil, err
		}
		inner = append(inner, extra...)
		edits = append(edits, textEdit{s.StartByte, s.EndByte, requote(content, s.StartByte, replacement)})
	}

	for _, m := range parsed.Modules {
		sub := submoduleName(m.Name, w.opts.Name)
		subNS := baseNS + "/" + sub

		bodySpecs := specifiersWithin(parsed.Specifiers, m.BodyStartByte, m.BodyEndByte)
		var bodyEdits []textEdit
		for _, s := range bodySpecs {
			replacement, extra, err := w.resolveSpecifier(ctx, node, subNS, location, s.Name, visited)
			if err != nil {
				return "", nil, err
			}
			inner = append(inner, extra...)
			bodyEdits = append(bodyEdits, textEdit{s.StartByte, s.EndByte, requote(content, s.StartByte, replacement)})
		}

		subBody := applyEdits(content, m.BodyStartByte, m.BodyEndByte, bodyEdits)
		inner = append(inner, Block{Namespace: subNS, Body: wrapModule(subNS, subBody), Header: blockHeader(w.opts, location)})
		edits = append(edits, textEdit{m.StartByte, m.EndByte, ""})
	}

	mainBody := applyEdits(content, 0, uint(len(content)), edits)
	return mainBody, inner, nil
}

// resolveSpecifier decides what a single module specifier found in node's
// entry (or one of its inline submodules) rewrites to, per the three
// rules of spec.md §4.H: a dependency of this node, a relative sibling
// file, or (only for ambient nodes) an untouched absolute specifier.
func (w *walker) resolveSpecifier(ctx context.Context, node *resolvetree.Node, baseNS, location, name string, visited map[string]bool) (string, []Block, error) {
	if remapped, ok := w.browserRemap(node, name); ok {
		name = remapped
	}

	if strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		resolvedLoc, err := pathutil.JoinLocation(location, ensureDefinitionPath(name))
		if err != nil {
			return "", nil, err
		}
		sub := submoduleName(name, w.opts.Name)
		subNS := baseNS + "/" + sub

		if visited[resolvedLoc] {
			return subNS, nil, nil
		}
		visited[resolvedLoc] = true

		text, err := w.fetcher.FetchText(ctx, resolvedLoc)
		if err != nil {
			return "", nil, err
		}
		parsed, err := declfile.Parse([]byte(text))
		if err != nil {
			return "", nil, err
		}
		body, extraInner, err := w.renderParsed(ctx, node, subNS, resolvedLoc, []byte(text), parsed, visited)
		if err != nil {
			return "", nil, err
		}
		blocks := append(extraInner, Block{Namespace: subNS, Body: wrapModule(subNS, body), Header: blockHeader(w.opts, resolvedLoc)})
		return subNS, blocks, nil
	}

	if childNS, missing, ok := dependencyNamespace(node, baseNS, name); ok {
		if missing {
			return "", nil, &resolvetree.MissingDependencyError{Name: childNS}
		}
		return childNS, nil, nil
	}

	if node.Ambient {
		return name, nil, nil
	}
	return "", nil, &UnresolvedSpecifierError{Name: name}
}

// browserRemap looks up name in node's browser field, when it is a remap
// object and the output being produced is the browser target (spec.md
// §4.H "Browser overlay").
func (w *walker) browserRemap(node *resolvetree.Node, name string) (string, bool) {
	if w.opts.Target != entryresolve.Browser {
		return "", false
	}
	remap, ok := manifest.BrowserMap(node.Browser)
	if !ok {
		return "", false
	}
	to, ok := remap[name]
	return to, ok
}

// dependencyNamespace reports whether name is one of node's own
// dependency keys (across all four maps) and, if so, the namespace its
// child was assigned during the tree walk: always baseNS + "~" + name,
// the same formula walkNode used to name that child.
func dependencyNamespace(node *resolvetree.Node, baseNS, name string) (ns string, missing bool, ok bool) {
	for _, kind := range resolvetree.DepKinds {
		m := node.DepMap(kind)
		if m == nil {
			continue
		}
		if child, found := m[name]; found {
			return baseNS + "~" + name, child.Missing, true
		}
	}
	return "", false, false
}

func containingModule(modules []declfile.ModuleBlock, pos uint) (declfile.ModuleBlock, bool) {
	for _, m := range modules {
		if pos >= m.BodyStartByte && pos < m.BodyEndByte {
			return m, true
		}
	}
	return declfile.ModuleBlock{}, false
}

func specifiersWithin(specs []declfile.Specifier, start, end uint) []declfile.Specifier {
	var out []declfile.Specifier
	for _, s := range specs {
		if s.StartByte >= start && s.EndByte <= end {
			out = append(out, s)
		}
	}
	return out
}

// requote re-renders replacement using the same quote character the
// original specifier literal used, so rewritten source keeps its style.
func requote(content []byte, start uint, replacement string) string {
	q := byte('"')
	if int(start) < len(content) {
		q = content[start]
	}
	return string(q) + replacement + string(q)
}

func wrapModule(ns, body string) string {
	if body == "" {
		return "declare module '" + ns + "' {}"
	}
	return "declare module '" + ns + "' {\n" + indent(body) + "\n}"
}

func indent(body string) string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
