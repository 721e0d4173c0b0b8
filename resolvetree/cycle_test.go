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
package resolvetree_test

import (
	"context"
	"errors"
	"testing"

	"typings.dev/typings/internal/mapfs"
	"typings.dev/typings/resolvetree"
)

func TestResolveSelfReferenceIsCircularDependency(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/typings.json", `{
		"name": "proj",
		"dependencies": {"self": "file:."}
	}`, 0o644)
	opts := newOptions(t, mfs, "/proj")

	_, err := resolvetree.Resolve(context.Background(), opts)
	var cycleErr *resolvetree.CircularDependencyError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CircularDependencyError, got %T: %v", err, err)
	}
}
