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
	"typings.dev/typings/fetchcache"
	"typings.dev/typings/fs"
)

// Logger receives diagnostic messages during resolution; nil fields on
// Options fall back to a no-op logger.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warning(string, ...any) {}
func (nopLogger) Debug(string, ...any)   {}

// Options configures a call to Resolve (spec.md §4.E, §6).
type Options struct {
	// Cwd is the starting directory; ecosystem manifests are discovered
	// by walking upward from it.
	Cwd string
	// Dev includes each ecosystem's devDependencies at the root.
	Dev bool
	// Ambient includes each ecosystem's ambientDependencies (and, with
	// Dev, ambientDevDependencies) at the root.
	Ambient bool

	FS      fs.FileSystem
	Fetcher *fetchcache.Fetcher
	Logger  Logger
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return nopLogger{}
	}
	return o.Logger
}

// nativeConfigFilename is the native manifest's conventional filename.
const nativeConfigFilename = "typings.json"
