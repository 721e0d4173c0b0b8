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

package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/native.schema.json
var schemaNative string

//go:embed schemas/npm.schema.json
var schemaNpm string

//go:embed schemas/bower.schema.json
var schemaBower string

// ValidationError reports a shallow JSON Schema violation in a manifest
// document, naming every offending field rather than a single type
// assertion failure.
type ValidationError struct {
	Kind    string
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s manifest failed shape validation: %s", e.Kind, strings.Join(e.Details, "; "))
}

// validate checks data against schema, used to catch "this isn't even the
// right shape" errors before the three readers build tree nodes from it.
// Unknown properties are permitted; only type mismatches on known fields
// are rejected, matching the tolerant parsing spec.md §6 describes.
func validate(schema, data string) error {
	if strings.TrimSpace(data) == "" {
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	docLoader := gojsonschema.NewStringLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	kind := kindOf(schema)
	details := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		details = append(details, re.String())
	}
	return &ValidationError{Kind: kind, Details: details}
}

func kindOf(schema string) string {
	switch schema {
	case schemaNative:
		return "native"
	case schemaNpm:
		return "npm"
	case schemaBower:
		return "bower"
	default:
		return "unknown"
	}
}
