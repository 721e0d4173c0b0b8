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

// Package resolve provides the resolve command for typings: a diagnostic
// dump of the resolved dependency tree, distinct from the human-rendered
// dependency-tree UI spec.md §1 places out of scope.
package resolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"typings.dev/typings/fetchcache"
	"typings.dev/typings/fs"
	"typings.dev/typings/resolvetree"
)

// Cmd is the resolve command.
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a project's dependency tree and print it as JSON",
	Long: `Resolve a project's native/npm/bower dependency tree without compiling
declarations, printing the result as JSON for diagnostic use.`,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("dev", false, "Include devDependencies at the root")
	Cmd.Flags().Bool("ambient", false, "Include ambientDependencies at the root")
	Cmd.Flags().String("proxy", "", "HTTP proxy URL for remote dependency fetches")
	Cmd.Flags().String("cache-dir", "", "HTTP cache directory (default: a temp directory)")

	_ = viper.BindPFlag("dev", Cmd.Flags().Lookup("dev"))
	_ = viper.BindPFlag("ambient", Cmd.Flags().Lookup("ambient"))
	_ = viper.BindPFlag("proxy", Cmd.Flags().Lookup("proxy"))
	_ = viper.BindPFlag("cache-dir", Cmd.Flags().Lookup("cache-dir"))
}

// diagnosticNode is the JSON shape printed for each resolved node: src,
// type, missing, ambient, and dependency map keys grouped by kind, per
// SPEC_FULL.md's `typings resolve --json` supplemented feature.
type diagnosticNode struct {
	Src     string `json:"src"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Missing bool   `json:"missing"`
	Ambient bool   `json:"ambient"`

	Dependencies           map[string]*diagnosticNode `json:"dependencies,omitempty"`
	DevDependencies        map[string]*diagnosticNode `json:"devDependencies,omitempty"`
	AmbientDependencies    map[string]*diagnosticNode `json:"ambientDependencies,omitempty"`
	AmbientDevDependencies map[string]*diagnosticNode `json:"ambientDevDependencies,omitempty"`
}

func toDiagnostic(n *resolvetree.Node) *diagnosticNode {
	d := &diagnosticNode{
		Src:     n.Src,
		Type:    n.Type.String(),
		Name:    n.Name,
		Missing: n.Missing,
		Ambient: n.Ambient,
	}
	for _, kind := range resolvetree.DepKinds {
		m := n.DepMap(kind)
		if m == nil {
			continue
		}
		out := make(map[string]*diagnosticNode, len(m))
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = toDiagnostic(m[k])
		}
		switch kind {
		case resolvetree.Dependencies:
			d.Dependencies = out
		case resolvetree.DevDependencies:
			d.DevDependencies = out
		case resolvetree.AmbientDependencies:
			d.AmbientDependencies = out
		case resolvetree.AmbientDevDependencies:
			d.AmbientDevDependencies = out
		}
	}
	return d
}

func run(cmd *cobra.Command, args []string) error {
	// cmd/compile binds the same viper keys at init; rebind to this
	// command's own flags so whichever init ran last does not win.
	_ = viper.BindPFlags(cmd.Flags())
	osfs := fs.NewOSFileSystem()
	absRoot, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	fetcher, err := fetchcache.New(osfs, fetchcache.Options{
		ProxyURL: viper.GetString("proxy"),
		CacheDir: viper.GetString("cache-dir"),
	})
	if err != nil {
		return err
	}

	root, err := resolvetree.Resolve(cmd.Context(), resolvetree.Options{
		Cwd:     absRoot,
		Dev:     viper.GetBool("dev"),
		Ambient: viper.GetBool("ambient"),
		FS:      osfs,
		Fetcher: fetcher,
	})
	if err != nil {
		return fmt.Errorf("resolving %s: %w", absRoot, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(toDiagnostic(root))
}
