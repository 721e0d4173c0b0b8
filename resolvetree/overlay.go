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

package resolvetree

import (
	"context"
	"path/filepath"

	"typings.dev/typings/manifest"
	"typings.dev/typings/pathutil"
)

// applyNativeOverlay reads the native config sitting beside an external
// manifest's directory (spec.md §4.E "Overlay") and merges its dependency
// maps over node's own, overwriting on key collision. A missing overlay
// file is not an error; it simply contributes nothing.
func applyNativeOverlay(ctx context.Context, rc *rctx, dir string, node *Node, dev, ambient bool) error {
	var overlayLocation string
	if pathutil.IsHTTP(dir) {
		joined, err := pathutil.JoinDir(dir, nativeConfigFilename)
		if err != nil {
			return err
		}
		overlayLocation = joined
	} else {
		overlayLocation = filepath.Join(dir, nativeConfigFilename)
	}

	result, err := manifest.ReadNative(ctx, rc.opts.Fetcher, overlayLocation)
	if err != nil {
		return err
	}
	if result.Missing {
		return nil
	}

	return expandNativeNode(ctx, rc, node, overlayLocation, result.Native, dev, ambient)
}
