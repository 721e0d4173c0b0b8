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

// Package declfile tokenizes a TypeScript declaration file enough to
// identify top-level "declare module" blocks, import/export module
// specifiers, reference directives, and export-equals forms (spec.md
// §4.G), without building or exposing a full syntax tree.
package declfile

import (
	"embed"
	"fmt"
	"path"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

//go:embed queries/typescript/*.scm
var queryFiles embed.FS

var language = ts.NewLanguage(tsTypescript.LanguageTypescript())

var parserPool = sync.Pool{
	New: func() any {
		p := ts.NewParser()
		if err := p.SetLanguage(language); err != nil {
			panic("declfile: failed to set TypeScript language: " + err.Error())
		}
		return p
	},
}

func getParser() *ts.Parser {
	return parserPool.Get().(*ts.Parser)
}

func putParser(p *ts.Parser) {
	p.Reset()
	parserPool.Put(p)
}

var (
	queries     map[string]*ts.Query
	queriesOnce sync.Once
	queriesErr  error
)

const (
	queryModules          = "modules"
	querySpecifiers       = "specifiers"
	queryExportAssignment = "export_assignment"
)

func loadedQueries() (map[string]*ts.Query, error) {
	queriesOnce.Do(func() {
		queries = make(map[string]*ts.Query, 3)
		for _, name := range []string{queryModules, querySpecifiers, queryExportAssignment} {
			data, err := queryFiles.ReadFile(path.Join("queries", "typescript", name+".scm"))
			if err != nil {
				queriesErr = fmt.Errorf("declfile: reading query %s: %w", name, err)
				return
			}
			q, err := ts.NewQuery(language, string(data))
			if err != nil {
				queriesErr = fmt.Errorf("declfile: compiling query %s: %w", name, err)
				return
			}
			queries[name] = q
		}
	})
	return queries, queriesErr
}
