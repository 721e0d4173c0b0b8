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

// Package manifest parses and shallow-validates the three manifest shapes
// a typings project can carry: the native typings.json config, an npm-style
// package.json, and a bower-style bower.json plus its companion .bowerrc.
// Unknown fields in any of them are ignored, per spec.md §6.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DependencyValue models a native config dependency entry, which may be a
// single short-form dependency string or an ordered list of candidates
// (spec.md §4.E: "the resolver tries them in order and accepts the first
// non-missing result").
type DependencyValue struct {
	Candidates []string
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (d *DependencyValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		d.Candidates = []string{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		d.Candidates = list
		return nil
	}

	return fmt.Errorf("dependency value must be a string or array of strings, got %s", string(data))
}

// DependencyMap is keyed by dependency name.
type DependencyMap map[string]DependencyValue

// Native is the native typings.json manifest shape (spec.md §6).
type Native struct {
	Name                   string        `json:"name,omitempty"`
	Main                   string        `json:"main,omitempty"`
	Browser                any           `json:"browser,omitempty"`
	Typings                string        `json:"typings,omitempty"`
	BrowserTypings         string        `json:"browserTypings,omitempty"`
	Ambient                bool          `json:"ambient,omitempty"`
	Dependencies           DependencyMap `json:"dependencies,omitempty"`
	DevDependencies        DependencyMap `json:"devDependencies,omitempty"`
	AmbientDependencies    DependencyMap `json:"ambientDependencies,omitempty"`
	AmbientDevDependencies DependencyMap `json:"ambientDevDependencies,omitempty"`
}

// Npm is the subset of package.json relevant to typings resolution
// (spec.md §6). optionalDependencies is kept separate so callers can apply
// the merge precedence spec.md §9 settles on (optional overrides regular).
type Npm struct {
	Name                 string            `json:"name,omitempty"`
	Version              string            `json:"version,omitempty"`
	Main                 string            `json:"main,omitempty"`
	Browser              any               `json:"browser,omitempty"`
	Typings              string            `json:"typings,omitempty"`
	BrowserTypings       string            `json:"browserTypings,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// Bower is the subset of bower.json relevant to typings resolution.
type Bower struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Main            string            `json:"main,omitempty"`
	Browser         any               `json:"browser,omitempty"`
	Typings         string            `json:"typings,omitempty"`
	BrowserTypings  string            `json:"browserTypings,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// BowerRC is the .bowerrc shape; only the components directory matters here.
type BowerRC struct {
	Directory string `json:"directory,omitempty"`
}

// DefaultBowerComponentsDir is used when no .bowerrc overrides it.
const DefaultBowerComponentsDir = "bower_components"

// DefaultNativeConfigFilename is the native manifest's conventional name.
const DefaultNativeConfigFilename = "typings.json"

// ParseNative parses and shallow-validates a native typings.json document.
func ParseNative(data []byte) (*Native, error) {
	if err := validate(schemaNative, data); err != nil {
		return nil, err
	}
	var n Native
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ParseNpm parses and shallow-validates a package.json document.
func ParseNpm(data []byte) (*Npm, error) {
	if err := validate(schemaNpm, data); err != nil {
		return nil, err
	}
	var p Npm
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseBower parses and shallow-validates a bower.json document.
func ParseBower(data []byte) (*Bower, error) {
	if err := validate(schemaBower, data); err != nil {
		return nil, err
	}
	var b Bower
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ParseBowerRC parses a .bowerrc document. Historically some .bowerrc files
// in the wild carry "//"-prefixed line comments despite .bowerrc being
// JSON; those are stripped before parsing.
func ParseBowerRC(data []byte) (*BowerRC, error) {
	data = stripLineComments(data)
	var rc BowerRC
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, err
	}
	if rc.Directory == "" {
		rc.Directory = DefaultBowerComponentsDir
	}
	return &rc, nil
}

func stripLineComments(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	out := make([][]byte, 0, len(lines))
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("//")) {
			continue
		}
		out = append(out, line)
	}
	return bytes.Join(out, []byte("\n"))
}

// BrowserString returns the node's browser field as a plain replacement
// path, if it was a JSON string rather than a remap object.
func BrowserString(browser any) (string, bool) {
	s, ok := browser.(string)
	return s, ok
}

// BrowserMap returns the node's browser field as a specifier remap, if it
// was a JSON object (spec.md §4.H "Browser overlay").
func BrowserMap(browser any) (map[string]string, bool) {
	m, ok := browser.(map[string]any)
	if !ok {
		return nil, false
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			result[k] = s
		}
	}
	return result, true
}

// CanonicalizeJSON re-encodes a JSON document through a generic
// map[string]any round-trip; encoding/json sorts object keys on marshal,
// so two documents that differ only in source key order, whitespace, or
// Go's randomized map iteration order compare equal as strings. Used by
// tests comparing tree-node provenance, never by the resolver itself.
func CanonicalizeJSON(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
