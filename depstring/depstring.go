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

// Package depstring parses the short-form dependency strings a native
// config, or a user on the command line, can use to name a dependency
// (spec.md §4.D): "npm:NAME", "bower:NAME", "github:OWNER/REPO[#REF]",
// "file:PATH", a bare HTTP(S) URL, or a bare filesystem path.
package depstring

import (
	"fmt"
	"strings"

	"typings.dev/typings/pathutil"
)

// Type tags a Descriptor's source ecosystem or location kind.
type Type int

const (
	// Npm names a dependency resolved through the npm ecosystem's
	// node_modules search (spec.md §4.E).
	Npm Type = iota
	// Bower names a dependency resolved through the bower components
	// directory search.
	Bower
	// Github names a dependency fetched from a GitHub repository,
	// resolved to an HTTP(S) location before use.
	Github
	// File names a dependency at an explicit local filesystem path.
	File
	// HTTP names a dependency at an explicit HTTP(S) URL.
	HTTP
)

func (t Type) String() string {
	switch t {
	case Npm:
		return "npm"
	case Bower:
		return "bower"
	case Github:
		return "github"
	case File:
		return "file"
	case HTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Descriptor is the typed result of parsing a short-form dependency string.
type Descriptor struct {
	Type     Type
	Location string

	// Owner and Repo are only set for Type == Github.
	Owner string
	Repo  string
	// Ref is the optional "#ref" suffix of a github: descriptor (branch,
	// tag, or commit); empty means "default branch".
	Ref string
}

const githubRawBase = "https://raw.githubusercontent.com/"

// Parse classifies a short-form dependency string per spec.md §4.D.
func Parse(s string) (Descriptor, error) {
	switch {
	case strings.HasPrefix(s, "npm:"):
		return Descriptor{Type: Npm, Location: strings.TrimPrefix(s, "npm:")}, nil

	case strings.HasPrefix(s, "bower:"):
		return Descriptor{Type: Bower, Location: strings.TrimPrefix(s, "bower:")}, nil

	case strings.HasPrefix(s, "github:"):
		return parseGithub(strings.TrimPrefix(s, "github:"))

	case strings.HasPrefix(s, "file:"):
		return Descriptor{Type: File, Location: strings.TrimPrefix(s, "file:")}, nil

	case pathutil.IsHTTP(s):
		return Descriptor{Type: HTTP, Location: s}, nil

	default:
		return Descriptor{Type: File, Location: s}, nil
	}
}

func parseGithub(rest string) (Descriptor, error) {
	ownerRepo, ref, _ := strings.Cut(rest, "#")

	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" {
		return Descriptor{}, fmt.Errorf("invalid github dependency %q: expected OWNER/REPO[#REF]", rest)
	}

	branch := ref
	if branch == "" {
		branch = "HEAD"
	}
	location := githubRawBase + owner + "/" + repo + "/" + branch + "/"

	return Descriptor{
		Type:     Github,
		Location: location,
		Owner:    owner,
		Repo:     repo,
		Ref:      ref,
	}, nil
}
